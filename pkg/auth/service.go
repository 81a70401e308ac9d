package auth

import (
	"errors"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/logger"
	"gorm.io/gorm"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a user with a hashed password. Duplicate usernames
// surface as Conflict.
func Register(username, password, name, address string) (*db.User, error) {
	var existing db.User
	err := db.DB.First(&existing, "username = ?", username).Error
	if err == nil {
		return nil, apperr.Newf(apperr.Conflict, "username %s already exists", username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := db.User{
		Username: username,
		Password: hashed,
		Name:     name,
		Address:  address,
		Role:     "USER",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	logger.Info("registered user", "username", username)
	return &user, nil
}

// Login verifies credentials and issues an access+refresh pair. The
// refresh token is stored on the user row so it can be rotated.
func Login(username, password string) (*db.User, *TokenPair, error) {
	var user db.User
	err := db.DB.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}
	if err != nil {
		return nil, nil, err
	}
	if !CheckPassword(user.Password, password) {
		return nil, nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}

	pair, err := issuePair(&user)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// Refresh validates a refresh token against the stored copy and rotates
// the pair. The used refresh token is blacklisted.
func Refresh(refreshToken string) (*db.User, *TokenPair, error) {
	identity, claims, err := ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, err
	}

	var user db.User
	if err := db.DB.First(&user, "id = ?", identity.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.Unauthenticated, "user no longer exists")
		}
		return nil, nil, err
	}
	if user.RefreshToken != refreshToken {
		return nil, nil, apperr.New(apperr.Unauthenticated, "refresh token superseded")
	}

	if err := InvalidateToken(claims.ID, claims.ExpiresAt.Time); err != nil {
		return nil, nil, err
	}
	pair, err := issuePair(&user)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// Logout blacklists the presented access token and clears the stored
// refresh token.
func Logout(identity Identity, accessClaims *Claims) error {
	if !identity.Present() {
		return apperr.New(apperr.Unauthenticated, "no authenticated user")
	}
	if accessClaims != nil {
		if err := InvalidateToken(accessClaims.ID, accessClaims.ExpiresAt.Time); err != nil {
			return err
		}
	}
	return db.DB.Model(&db.User{}).
		Where("id = ?", identity.UserID).
		Update("refresh_token", "").Error
}

func issuePair(user *db.User) (*TokenPair, error) {
	access, err := CreateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := CreateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := db.DB.Model(user).Update("refresh_token", refresh).Error; err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
