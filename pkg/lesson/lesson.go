// Package lesson manages video lessons, their vocabulary and the
// per-user watch progress.
package lesson

import (
	"errors"
	"strings"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/auth"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/logger"
	"github.com/doduclong204/vietvibe/pkg/pagination"
	"gorm.io/gorm"
)

// Summary is a lesson decorated with the requesting user's progress.
type Summary struct {
	Lesson            db.Lesson `json:"lesson"`
	LastWatchedSecond float64   `json:"last_watched_second"`
	Completed         bool      `json:"completed"`
}

type PageResult struct {
	Meta   pagination.Meta `json:"meta"`
	Result []Summary       `json:"result"`
}

// CreateLesson stores a lesson with its nested vocabulary and detail.
// Duplicate titles surface as Conflict.
func CreateLesson(l *db.Lesson) error {
	var existing db.Lesson
	err := db.DB.First(&existing, "lesson_title = ?", l.LessonTitle).Error
	if err == nil {
		return apperr.Newf(apperr.Conflict, "lesson title %q already exists", l.LessonTitle)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := db.DB.Create(l).Error; err != nil {
		return err
	}
	logger.Info("created lesson", "lesson_id", l.ID, "title", l.LessonTitle)
	return nil
}

// GetLesson loads one lesson with its vocabulary and detail.
func GetLesson(lessonID string) (*db.Lesson, error) {
	var l db.Lesson
	err := db.DB.Preload("Vocabularies").Preload("LessonDetail").
		First(&l, "id = ?", lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "lesson %s not found", lessonID)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateLesson overwrites the lesson's own fields. Nested vocabulary
// rows are managed through their own operations.
func UpdateLesson(lessonID string, updated *db.Lesson) (*db.Lesson, error) {
	var l db.Lesson
	err := db.DB.First(&l, "id = ?", lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "lesson %s not found", lessonID)
	}
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(updated.LessonTitle); title != "" && title != l.LessonTitle {
		var other db.Lesson
		err := db.DB.First(&other, "lesson_title = ? AND id <> ?", title, lessonID).Error
		if err == nil {
			return nil, apperr.Newf(apperr.Conflict, "lesson title %q already exists", title)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		l.LessonTitle = title
	}
	if updated.VideoURL != "" {
		l.VideoURL = updated.VideoURL
	}
	if updated.Description != "" {
		l.Description = updated.Description
	}
	if updated.Level != "" {
		l.Level = updated.Level
	}
	if updated.DurationSeconds > 0 {
		l.DurationSeconds = updated.DurationSeconds
	}
	l.UpdatedBy = updated.UpdatedBy

	if err := db.DB.Save(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLessons pages through lessons, decorating each with the
// requesting user's progress. An absent identity yields zero progress.
func ListLessons(identity auth.Identity, page pagination.Request) (*PageResult, error) {
	page = page.Normalized()

	var total int64
	if err := db.DB.Model(&db.Lesson{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var lessons []db.Lesson
	if err := db.DB.Preload("Vocabularies").Preload("LessonDetail").
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&lessons).Error; err != nil {
		return nil, err
	}

	progress := map[string]db.UserLesson{}
	if identity.Present() && len(lessons) > 0 {
		ids := make([]string, len(lessons))
		for i := range lessons {
			ids[i] = lessons[i].ID
		}
		var rows []db.UserLesson
		if err := db.DB.
			Where("user_id = ? AND lesson_id IN ?", identity.UserID, ids).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			progress[row.LessonID] = row
		}
	}

	summaries := make([]Summary, len(lessons))
	for i := range lessons {
		s := Summary{Lesson: lessons[i]}
		if row, ok := progress[lessons[i].ID]; ok {
			s.LastWatchedSecond = row.LastWatchedSecond
			s.Completed = row.Completed
		}
		summaries[i] = s
	}

	return &PageResult{
		Meta:   pagination.MetaFor(page, total),
		Result: summaries,
	}, nil
}

// CountLessons reports how many lessons exist.
func CountLessons() (int64, error) {
	var count int64
	err := db.DB.Model(&db.Lesson{}).Count(&count).Error
	return count, err
}

// DeleteLesson removes a lesson and its children. Children go first so
// a mid-way failure never leaves them orphaned behind a deleted parent;
// individual child failures are logged and deletion continues.
func DeleteLesson(lessonID string) error {
	var l db.Lesson
	err := db.DB.First(&l, "id = ?", lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.NotFound, "lesson %s not found", lessonID)
	}
	if err != nil {
		return err
	}

	if err := db.DB.Where("lesson_id = ?", lessonID).Delete(&db.UserLesson{}).Error; err != nil {
		logger.Error("failed to delete lesson progress rows", "lesson_id", lessonID, "error", err)
	}
	if err := db.DB.Where("lesson_id = ?", lessonID).Delete(&db.Vocabulary{}).Error; err != nil {
		logger.Error("failed to delete lesson vocabulary", "lesson_id", lessonID, "error", err)
	}
	if err := db.DB.Where("lesson_id = ?", lessonID).Delete(&db.LessonDetail{}).Error; err != nil {
		logger.Error("failed to delete lesson detail", "lesson_id", lessonID, "error", err)
	}

	if err := db.DB.Delete(&db.Lesson{}, "id = ?", lessonID).Error; err != nil {
		return err
	}
	logger.Info("deleted lesson", "lesson_id", lessonID, "title", l.LessonTitle)
	return nil
}
