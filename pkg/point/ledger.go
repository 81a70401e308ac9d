// Package point records play attempts and keeps game and user
// aggregates consistent.
package point

import (
	"errors"
	"time"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/logger"
	"gorm.io/gorm"
)

// PerfectRunBonus is awarded when every question in an attempt was
// answered correctly. Policy constant, not user-configurable.
const PerfectRunBonus = 5

// Record is the external representation of one scoring event.
type Record struct {
	ID             uint        `json:"id"`
	UserID         string      `json:"user_id"`
	UserName       string      `json:"user_name"`
	GameID         uint        `json:"game_id"`
	GameName       string      `json:"game_name,omitempty"`
	GameType       db.GameType `json:"game_type"`
	Score          int         `json:"score"`
	Bonus          int         `json:"bonus"`
	CorrectAnswers int         `json:"correct_answers"`
	TotalQuestions int         `json:"total_questions"`
	CreatedAt      time.Time   `json:"created_at"`
}

func toRecord(p *db.Point) *Record {
	return &Record{
		ID:             p.ID,
		UserID:         p.UserID,
		UserName:       p.User.Username,
		GameID:         p.GameID,
		GameName:       p.Game.Name,
		GameType:       p.Game.Type,
		Score:          p.Score,
		Bonus:          p.Bonus,
		CorrectAnswers: p.CorrectAnswers,
		TotalQuestions: p.TotalQuestions,
		CreatedAt:      p.CreatedAt,
	}
}

// Submit records a play attempt. An existing point with the same
// (user, game, score, bonus) is treated as the same attempt and
// refreshed instead of duplicated. TimesPlayed increments once per call
// either way; BestScore is raised when score+bonus exceeds it. The whole
// sequence runs in one transaction so the dedup lookup and the aggregate
// read-modify-write cannot race with a concurrent submit.
func Submit(userID string, gameID uint, score, correctAnswers, totalQuestions int) (*Record, error) {
	bonus := 0
	if correctAnswers == totalQuestions {
		bonus = PerfectRunBonus
	}

	var point db.Point
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var user db.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "user %s not found", userID)
			}
			return err
		}
		var game db.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "game %d not found", gameID)
			}
			return err
		}

		now := time.Now().UTC()
		err := tx.Where("user_id = ? AND game_id = ? AND score = ? AND bonus = ?",
			userID, gameID, score, bonus).First(&point).Error
		switch {
		case err == nil:
			point.CorrectAnswers = correctAnswers
			point.TotalQuestions = totalQuestions
			point.CreatedAt = now
			if err := tx.Save(&point).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			point = db.Point{
				UserID:         userID,
				GameID:         gameID,
				Score:          score,
				Bonus:          bonus,
				CorrectAnswers: correctAnswers,
				TotalQuestions: totalQuestions,
				CreatedAt:      now,
			}
			if err := tx.Create(&point).Error; err != nil {
				return err
			}
		default:
			return err
		}

		updates := map[string]any{"times_played": game.TimesPlayed + 1}
		if total := score + bonus; total > game.BestScore {
			updates["best_score"] = total
		}
		if err := tx.Model(&game).Updates(updates).Error; err != nil {
			return err
		}

		point.User = user
		point.Game = game
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("recorded point", "user", userID, "game", gameID, "score", score, "bonus", bonus)
	return toRecord(&point), nil
}

// UpdatePoint sets score and bonus directly. Game aggregates are not
// recomputed; the drift matches the reset behavior below.
func UpdatePoint(pointID uint, score, bonus int) (*Record, error) {
	var point db.Point
	err := db.DB.Preload("User").Preload("Game").First(&point, pointID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "point %d not found", pointID)
	}
	if err != nil {
		return nil, err
	}

	point.Score = score
	point.Bonus = bonus
	if err := db.DB.Save(&point).Error; err != nil {
		return nil, err
	}
	return toRecord(&point), nil
}

func DeletePoint(pointID uint) error {
	res := db.DB.Delete(&db.Point{}, pointID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Newf(apperr.NotFound, "point %d not found", pointID)
	}
	return nil
}

// ResetUserPoints deletes every point of the user. Game aggregates
// (BestScore, TimesPlayed) keep their values; see package docs on
// accepted drift. Resetting an already-empty set is a no-op.
func ResetUserPoints(userID string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var user db.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "user %s not found", userID)
			}
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&db.Point{}).Error
	})
}

func ResetGamePoints(gameID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var game db.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "game %d not found", gameID)
			}
			return err
		}
		return tx.Where("game_id = ?", gameID).Delete(&db.Point{}).Error
	})
}

// GetHistory returns every recorded attempt of the user, newest first.
func GetHistory(userID string) ([]Record, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return listRecords(db.DB.Where("user_id = ?", userID))
}

func GetHistoryByGame(userID string, gameID uint) ([]Record, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireGame(gameID); err != nil {
		return nil, err
	}
	return listRecords(db.DB.Where("user_id = ? AND game_id = ?", userID, gameID))
}

func listRecords(query *gorm.DB) ([]Record, error) {
	var points []db.Point
	if err := query.
		Preload("User").Preload("Game").
		Order("created_at DESC, id DESC").
		Find(&points).Error; err != nil {
		return nil, err
	}
	records := make([]Record, len(points))
	for i := range points {
		records[i] = *toRecord(&points[i])
	}
	return records, nil
}

func requireUser(userID string) error {
	var user db.User
	err := db.DB.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.NotFound, "user %s not found", userID)
	}
	return err
}

func requireGame(gameID uint) error {
	var game db.Game
	err := db.DB.First(&game, gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.NotFound, "game %d not found", gameID)
	}
	return err
}
