package lesson

import (
	"errors"
	"strings"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"gorm.io/gorm"
)

// AddVocabulary attaches a word to a lesson. Words are globally unique;
// duplicates surface as Conflict.
func AddVocabulary(lessonID string, v *db.Vocabulary) error {
	var l db.Lesson
	err := db.DB.First(&l, "id = ?", lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.NotFound, "lesson %s not found", lessonID)
	}
	if err != nil {
		return err
	}

	var existing db.Vocabulary
	err = db.DB.First(&existing, "word = ?", v.Word).Error
	if err == nil {
		return apperr.Newf(apperr.Conflict, "word %q already exists", v.Word)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	v.LessonID = lessonID
	return db.DB.Create(v).Error
}

// GetVocabulary loads one word by ID.
func GetVocabulary(vocabID string) (*db.Vocabulary, error) {
	var v db.Vocabulary
	err := db.DB.First(&v, "id = ?", vocabID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "vocabulary %s not found", vocabID)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVocabulary overwrites the word's fields, keeping the global
// word uniqueness.
func UpdateVocabulary(vocabID string, updated *db.Vocabulary) (*db.Vocabulary, error) {
	v, err := GetVocabulary(vocabID)
	if err != nil {
		return nil, err
	}

	if word := strings.TrimSpace(updated.Word); word != "" && word != v.Word {
		var other db.Vocabulary
		err := db.DB.First(&other, "word = ? AND id <> ?", word, vocabID).Error
		if err == nil {
			return nil, apperr.Newf(apperr.Conflict, "word %q already exists", word)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		v.Word = word
	}
	if updated.EnglishMeaning != "" {
		v.EnglishMeaning = updated.EnglishMeaning
	}
	if updated.ExampleSentence != "" {
		v.ExampleSentence = updated.ExampleSentence
	}

	if err := db.DB.Save(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVocabulary removes one word.
func DeleteVocabulary(vocabID string) error {
	res := db.DB.Delete(&db.Vocabulary{}, "id = ?", vocabID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Newf(apperr.NotFound, "vocabulary %s not found", vocabID)
	}
	return nil
}

// ListVocabulary returns a lesson's words.
func ListVocabulary(lessonID string) ([]db.Vocabulary, error) {
	var words []db.Vocabulary
	err := db.DB.Where("lesson_id = ?", lessonID).Order("created_at ASC").Find(&words).Error
	return words, err
}
