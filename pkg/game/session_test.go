package game

import (
	"testing"
	"time"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/internal/testutil"
)

func createSessionUser(t *testing.T) *db.User {
	t.Helper()
	u := db.User{Username: "player", Password: "x"}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &u
}

func TestStartSessionCreatesAndResets(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createSessionUser(t)
	g := createChoiceGame(t, db.GameTypeMultipleChoice)

	session, err := StartSession(u.ID, g.ID)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if session.AttemptCount != 0 || session.CorrectCount != 0 {
		t.Fatalf("expected fresh counters, got %+v", session)
	}

	if _, err := RecordAnswer(u.ID, g.ID, g.Questions[0].ID, true); err != nil {
		t.Fatalf("failed to record answer: %v", err)
	}

	restarted, err := StartSession(u.ID, g.ID)
	if err != nil {
		t.Fatalf("failed to restart session: %v", err)
	}
	if restarted.ID != session.ID {
		t.Fatalf("expected restart to reuse row %d, got %d", session.ID, restarted.ID)
	}
	if restarted.AttemptCount != 0 || restarted.CorrectCount != 0 {
		t.Fatalf("expected counters reset on restart, got %+v", restarted)
	}

	var count int64
	if err := db.DB.Model(&db.PlaySession{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count sessions: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single session row per user+game, got %d", count)
	}
}

func TestStartSessionGameNotFound(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createSessionUser(t)
	if _, err := StartSession(u.ID, 999); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestRecordAnswerCountsOnce(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createSessionUser(t)
	g := createChoiceGame(t, db.GameTypeMultipleChoice)
	questionID := g.Questions[0].ID

	if _, err := StartSession(u.ID, g.ID); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	first, err := RecordAnswer(u.ID, g.ID, questionID, true)
	if err != nil {
		t.Fatalf("failed to record answer: %v", err)
	}
	if first.AttemptCount != 1 || first.CorrectCount != 1 {
		t.Fatalf("unexpected counters after first answer: %+v", first)
	}

	repeat, err := RecordAnswer(u.ID, g.ID, questionID, true)
	if err != nil {
		t.Fatalf("failed to record repeated answer: %v", err)
	}
	if repeat.AttemptCount != 1 || repeat.CorrectCount != 1 {
		t.Fatalf("repeated answer should not change counters: %+v", repeat)
	}
}

func TestRecordAnswerWithoutSession(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createSessionUser(t)
	g := createChoiceGame(t, db.GameTypeMultipleChoice)
	if _, err := RecordAnswer(u.ID, g.ID, g.Questions[0].ID, false); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound without session, got %v", err)
	}
}

func TestFinishSessionRemovesRow(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createSessionUser(t)
	g := createChoiceGame(t, db.GameTypeMultipleChoice)

	if _, err := StartSession(u.ID, g.ID); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if err := FinishSession(u.ID, g.ID); err != nil {
		t.Fatalf("failed to finish session: %v", err)
	}

	var count int64
	if err := db.DB.Model(&db.PlaySession{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count sessions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected session row to be removed, got %d", count)
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createSessionUser(t)
	g := createChoiceGame(t, db.GameTypeMultipleChoice)
	other := createOrderGame(t)

	if _, err := StartSession(u.ID, g.ID); err != nil {
		t.Fatalf("failed to start first session: %v", err)
	}
	if _, err := StartSession(u.ID, other.ID); err != nil {
		t.Fatalf("failed to start second session: %v", err)
	}

	past := time.Now().UTC().Add(-time.Minute)
	if err := db.DB.Model(&db.PlaySession{}).
		Where("game_id = ?", g.ID).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("failed to expire session: %v", err)
	}

	deleted, err := CleanupExpiredSessions(time.Now().UTC())
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 expired session deleted, got %d", deleted)
	}

	var remaining []db.PlaySession
	if err := db.DB.Find(&remaining).Error; err != nil {
		t.Fatalf("failed to list sessions: %v", err)
	}
	if len(remaining) != 1 || remaining[0].GameID != other.ID {
		t.Fatalf("expected only the live session to remain, got %+v", remaining)
	}
}
