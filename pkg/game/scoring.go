// Package game evaluates submitted answers against a game's stored
// answer keys and tracks in-flight play sessions.
package game

import (
	"errors"
	"sort"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"gorm.io/gorm"
)

// Submission is one answer to one question. AnswerID is used by the
// choice game types, OrderedAnswerIDs by SENTENCE_ORDER.
type Submission struct {
	QuestionID       uint   `json:"question_id" binding:"required"`
	AnswerID         *uint  `json:"answer_id,omitempty"`
	OrderedAnswerIDs []uint `json:"ordered_answer_ids,omitempty"`
}

// Verdict reports correctness and the canonical answer for feedback.
type Verdict struct {
	GameID          uint   `json:"game_id"`
	QuestionID      uint   `json:"question_id"`
	Correct         bool   `json:"correct"`
	CorrectAnswerID *uint  `json:"correct_answer_id,omitempty"`
	CorrectOrder    []uint `json:"correct_order,omitempty"`
}

// LoadGame fetches a game with its questions and answers.
func LoadGame(gameID uint) (*db.Game, error) {
	var g db.Game
	err := db.DB.Preload("Questions.Answers").First(&g, gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "game %d not found", gameID)
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Evaluate scores a submission against the question's stored answers.
// The question must belong to the game. Evaluation is pure: no state is
// touched, the caller decides what to record.
func Evaluate(g *db.Game, sub Submission) (*Verdict, error) {
	question := findQuestion(g, sub.QuestionID)
	if question == nil {
		return nil, apperr.Newf(apperr.NotFound, "question %d not found in game %d", sub.QuestionID, g.ID)
	}

	verdict := &Verdict{GameID: g.ID, QuestionID: question.ID}

	switch g.Type {
	case db.GameTypeMultipleChoice, db.GameTypeListeningChoice:
		verdict.CorrectAnswerID = correctAnswerID(question)
		verdict.Correct = sub.AnswerID != nil && verdict.CorrectAnswerID != nil &&
			*sub.AnswerID == *verdict.CorrectAnswerID
	case db.GameTypeSentenceOrder:
		if len(sub.OrderedAnswerIDs) == 0 {
			return nil, apperr.New(apperr.InvalidSubmission, "ordered answer ids must not be empty")
		}
		verdict.CorrectOrder = canonicalOrder(question)
		verdict.Correct = equalOrder(sub.OrderedAnswerIDs, verdict.CorrectOrder)
	default:
		// Unknown game type: verdict stays false and no answer key is
		// disclosed.
	}

	return verdict, nil
}

func findQuestion(g *db.Game, questionID uint) *db.Question {
	for i := range g.Questions {
		if g.Questions[i].ID == questionID {
			return &g.Questions[i]
		}
	}
	return nil
}

// correctAnswerID returns the first answer flagged correct, or nil when
// none is flagged.
func correctAnswerID(q *db.Question) *uint {
	for i := range q.Answers {
		if q.Answers[i].IsCorrect {
			return &q.Answers[i].ID
		}
	}
	return nil
}

// canonicalOrder projects the question's answers, sorted ascending by
// order index, to their IDs.
func canonicalOrder(q *db.Question) []uint {
	answers := make([]db.Answer, len(q.Answers))
	copy(answers, q.Answers)
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].OrderIndex < answers[j].OrderIndex
	})
	ids := make([]uint, len(answers))
	for i, a := range answers {
		ids[i] = a.ID
	}
	return ids
}

func equalOrder(got, want []uint) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
