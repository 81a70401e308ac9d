package auth

import (
	"errors"
	"strings"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/pagination"
	"gorm.io/gorm"
)

type UserPage struct {
	Meta   pagination.Meta `json:"meta"`
	Result []db.User       `json:"result"`
}

// GetUser loads one user by ID.
func GetUser(userID string) (*db.User, error) {
	var u db.User
	err := db.DB.First(&u, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "user %s not found", userID)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers pages through registered users.
func ListUsers(page pagination.Request) (*UserPage, error) {
	page = page.Normalized()

	var total int64
	if err := db.DB.Model(&db.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var users []db.User
	if err := db.DB.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return &UserPage{Meta: pagination.MetaFor(page, total), Result: users}, nil
}

// UpdateUser overwrites profile fields. Passwords are rehashed when a
// new one is supplied; usernames stay unique.
func UpdateUser(userID string, updated *db.User) (*db.User, error) {
	u, err := GetUser(userID)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(updated.Username); username != "" && username != u.Username {
		var other db.User
		err := db.DB.First(&other, "username = ? AND id <> ?", username, userID).Error
		if err == nil {
			return nil, apperr.Newf(apperr.Conflict, "username %s already exists", username)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		u.Username = username
	}
	if updated.Password != "" {
		hashed, err := HashPassword(updated.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hashed
	}
	if updated.Name != "" {
		u.Name = updated.Name
	}
	if updated.Address != "" {
		u.Address = updated.Address
	}
	u.UpdatedBy = updated.UpdatedBy

	if err := db.DB.Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the user with their progress and points.
func DeleteUser(userID string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var u db.User
		err := tx.First(&u, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Newf(apperr.NotFound, "user %s not found", userID)
		}
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&db.UserLesson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&db.PlaySession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&db.Point{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.User{}, "id = ?", userID).Error
	})
}
