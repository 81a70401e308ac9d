package lesson

import (
	"errors"
	"time"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/auth"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/logger"
	"gorm.io/gorm"
)

// CompletionThreshold marks a lesson as completed once the saved
// progress reaches it. The stored value is a watch position in seconds
// while the threshold reads like a percentage; the comparison is kept
// as-is because changing it would silently flip existing completion
// counts.
const CompletionThreshold = 100.0

// SaveProgress upserts the single progress row for (user, lesson).
// Last write wins, so rewinding the video lowers the stored position.
func SaveProgress(identity auth.Identity, lessonID string, seconds float64) error {
	if !identity.Present() {
		return apperr.New(apperr.Unauthenticated, "no authenticated user")
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		var l db.Lesson
		if err := tx.First(&l, "id = ?", lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.NotFound, "lesson %s not found", lessonID)
			}
			return err
		}

		var ul db.UserLesson
		err := tx.First(&ul, "user_id = ? AND lesson_id = ?", identity.UserID, lessonID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ul = db.UserLesson{
				UserID:            identity.UserID,
				LessonID:          lessonID,
				LastWatchedSecond: seconds,
				Completed:         seconds >= CompletionThreshold,
			}
			return tx.Create(&ul).Error
		}
		if err != nil {
			return err
		}

		ul.LastWatchedSecond = seconds
		// Completion is sticky: rewinding lowers the position but never
		// takes a finished lesson back.
		ul.Completed = ul.Completed || seconds >= CompletionThreshold
		ul.UpdatedAt = time.Now().UTC()
		return tx.Save(&ul).Error
	})
}

// GetProgress returns the last watched position, or 0.0 when the user
// has never watched the lesson.
func GetProgress(identity auth.Identity, lessonID string) (float64, error) {
	if !identity.Present() {
		return 0, apperr.New(apperr.Unauthenticated, "no authenticated user")
	}

	var ul db.UserLesson
	err := db.DB.First(&ul, "user_id = ? AND lesson_id = ?", identity.UserID, lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return ul.LastWatchedSecond, nil
}

// CountCompletedLessons counts the user's progress rows at or past the
// completion threshold.
func CountCompletedLessons(identity auth.Identity) (int64, error) {
	if !identity.Present() {
		return 0, apperr.New(apperr.Unauthenticated, "no authenticated user")
	}

	var count int64
	err := db.DB.Model(&db.UserLesson{}).
		Where("user_id = ? AND last_watched_second >= ?", identity.UserID, CompletionThreshold).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	logger.Debug("counted completed lessons", "user_id", identity.UserID, "count", count)
	return count, nil
}
