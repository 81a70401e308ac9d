package game

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/logger"
	"gorm.io/gorm"
)

const (
	SessionTTL           = 30 * time.Minute
	SessionSweepInterval = time.Hour
)

// StartSession opens (or restarts) the in-flight play state for one
// (user, game) pair. A previous unfinished run for the same pair is
// reset, the unique index keeps the pair single-rowed.
func StartSession(userID string, gameID uint) (*db.PlaySession, error) {
	if _, err := LoadGame(gameID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	empty, _ := json.Marshal([]uint{})
	session := db.PlaySession{
		UserID:         userID,
		GameID:         gameID,
		AnsweredIDs:    empty,
		LastActivityAt: now,
		ExpiresAt:      now.Add(SessionTTL),
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing db.PlaySession
		err := tx.Where("user_id = ? AND game_id = ?", userID, gameID).First(&existing).Error
		switch {
		case err == nil:
			existing.AnsweredIDs = empty
			existing.CorrectCount = 0
			existing.AttemptCount = 0
			existing.LastActivityAt = now
			existing.ExpiresAt = now.Add(SessionTTL)
			session = existing
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&session).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// RecordAnswer notes that a question was attempted in the session. A
// question already answered in the session is not counted twice.
func RecordAnswer(userID string, gameID uint, questionID uint, correct bool) (*db.PlaySession, error) {
	var session db.PlaySession
	err := db.DB.Where("user_id = ? AND game_id = ?", userID, gameID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "no play session for user %s game %d", userID, gameID)
	}
	if err != nil {
		return nil, err
	}

	var answered []uint
	if len(session.AnsweredIDs) > 0 {
		if err := json.Unmarshal(session.AnsweredIDs, &answered); err != nil {
			return nil, err
		}
	}
	for _, id := range answered {
		if id == questionID {
			return &session, nil
		}
	}
	answered = append(answered, questionID)
	encoded, err := json.Marshal(answered)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session.AnsweredIDs = encoded
	session.AttemptCount++
	if correct {
		session.CorrectCount++
	}
	session.LastActivityAt = now
	session.ExpiresAt = now.Add(SessionTTL)

	if err := db.DB.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FinishSession removes the in-flight state once the run is recorded in
// the point ledger.
func FinishSession(userID string, gameID uint) error {
	return db.DB.Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&db.PlaySession{}).Error
}

func CleanupExpiredSessions(now time.Time) (int64, error) {
	if db.DB == nil {
		return 0, nil
	}
	res := db.DB.Where("expires_at <= ?", now).Delete(&db.PlaySession{})
	return res.RowsAffected, res.Error
}

func StartSessionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = SessionSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := CleanupExpiredSessions(time.Now().UTC()); err != nil {
				logger.Error("failed to cleanup expired play sessions", "error", err)
			}
		}
	}
}
