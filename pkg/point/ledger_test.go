package point

import (
	"testing"

	"github.com/doduclong204/vietvibe/pkg/apperr"
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/internal/testutil"
)

func createUser(t *testing.T, username string) *db.User {
	t.Helper()
	u := db.User{Username: username, Password: "secret"}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &u
}

func createGame(t *testing.T, name string) *db.Game {
	t.Helper()
	g := db.Game{Name: name, Type: db.GameTypeMultipleChoice, TotalQuestion: 3}
	if err := db.DB.Create(&g).Error; err != nil {
		t.Fatalf("failed to create game %s: %v", name, err)
	}
	return &g
}

func reloadGame(t *testing.T, id uint) *db.Game {
	t.Helper()
	var g db.Game
	if err := db.DB.First(&g, id).Error; err != nil {
		t.Fatalf("failed to reload game %d: %v", id, err)
	}
	return &g
}

func countPoints(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := db.DB.Model(&db.Point{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count points: %v", err)
	}
	return count
}

func TestSubmitRecordsPoint(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "greetings quiz")

	record, err := Submit(u.ID, g.ID, 10, 2, 3)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if record.Bonus != 0 {
		t.Fatalf("expected no bonus for imperfect run, got %d", record.Bonus)
	}
	if record.UserName != "linh" || record.GameName != "greetings quiz" {
		t.Fatalf("unexpected record names: %+v", record)
	}

	updated := reloadGame(t, g.ID)
	if updated.TimesPlayed != 1 {
		t.Fatalf("expected times played 1, got %d", updated.TimesPlayed)
	}
	if updated.BestScore != 10 {
		t.Fatalf("expected best score 10, got %d", updated.BestScore)
	}
}

func TestSubmitPerfectRunBonus(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "greetings quiz")

	record, err := Submit(u.ID, g.ID, 10, 3, 3)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if record.Bonus != PerfectRunBonus {
		t.Fatalf("expected bonus %d for perfect run, got %d", PerfectRunBonus, record.Bonus)
	}
	if got := reloadGame(t, g.ID).BestScore; got != 15 {
		t.Fatalf("expected best score 15 (score+bonus), got %d", got)
	}
}

func TestSubmitReconciliation(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "greetings quiz")

	first, err := Submit(u.ID, g.ID, 10, 2, 3)
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	second, err := Submit(u.ID, g.ID, 10, 2, 3)
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected resubmission to reuse point %d, got %d", first.ID, second.ID)
	}
	if got := countPoints(t); got != 1 {
		t.Fatalf("expected a single point row after reconciliation, got %d", got)
	}

	updated := reloadGame(t, g.ID)
	if updated.TimesPlayed != 2 {
		t.Fatalf("times played increments per submit call, expected 2 got %d", updated.TimesPlayed)
	}
	if updated.BestScore != 10 {
		t.Fatalf("expected best score set once to 10, got %d", updated.BestScore)
	}
}

func TestSubmitDistinctScoresCreateRows(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "greetings quiz")

	if _, err := Submit(u.ID, g.ID, 10, 2, 3); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := Submit(u.ID, g.ID, 20, 2, 3); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	if got := countPoints(t); got != 2 {
		t.Fatalf("expected two point rows for distinct scores, got %d", got)
	}
	if got := reloadGame(t, g.ID).BestScore; got != 20 {
		t.Fatalf("expected best score raised to 20, got %d", got)
	}
}

func TestSubmitMissingUserOrGame(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "greetings quiz")

	if _, err := Submit("missing-user", g.ID, 10, 1, 3); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for missing user, got %v", err)
	}
	if _, err := Submit(u.ID, 999, 10, 1, 3); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for missing game, got %v", err)
	}
	if got := countPoints(t); got != 0 {
		t.Fatalf("expected no point rows after failed submits, got %d", got)
	}
}

func TestUpdatePoint(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "greetings quiz")

	record, err := Submit(u.ID, g.ID, 10, 2, 3)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updated, err := UpdatePoint(record.ID, 7, 1)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Score != 7 || updated.Bonus != 1 {
		t.Fatalf("unexpected updated record: %+v", updated)
	}

	// Aggregates are intentionally left alone on direct updates.
	if got := reloadGame(t, g.ID).BestScore; got != 10 {
		t.Fatalf("expected best score untouched at 10, got %d", got)
	}

	if _, err := UpdatePoint(9999, 1, 0); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for missing point, got %v", err)
	}
}

func TestDeletePoint(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "greetings quiz")

	record, err := Submit(u.ID, g.ID, 10, 2, 3)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := DeletePoint(record.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := DeletePoint(record.ID); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for repeated delete, got %v", err)
	}
}

func TestResetUserPoints(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	other := createUser(t, "minh")
	g := createGame(t, "greetings quiz")

	if _, err := Submit(u.ID, g.ID, 10, 2, 3); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := Submit(other.ID, g.ID, 12, 2, 3); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := ResetUserPoints(u.ID); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	var remaining []db.Point
	if err := db.DB.Find(&remaining).Error; err != nil {
		t.Fatalf("failed to list points: %v", err)
	}
	if len(remaining) != 1 || remaining[0].UserID != other.ID {
		t.Fatalf("expected only the other user's point to remain, got %+v", remaining)
	}

	// Repeating the reset on an empty set is a no-op, not an error.
	if err := ResetUserPoints(u.ID); err != nil {
		t.Fatalf("repeated reset failed: %v", err)
	}

	// Aggregates keep their values after a reset.
	if got := reloadGame(t, g.ID); got.TimesPlayed != 2 || got.BestScore != 12 {
		t.Fatalf("expected aggregates untouched, got %+v", got)
	}
}

func TestResetGamePoints(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "greetings quiz")
	other := createGame(t, "numbers quiz")

	if _, err := Submit(u.ID, g.ID, 10, 2, 3); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := Submit(u.ID, other.ID, 8, 2, 3); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := ResetGamePoints(g.ID); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	var remaining []db.Point
	if err := db.DB.Find(&remaining).Error; err != nil {
		t.Fatalf("failed to list points: %v", err)
	}
	if len(remaining) != 1 || remaining[0].GameID != other.ID {
		t.Fatalf("expected only the other game's point to remain, got %+v", remaining)
	}

	if err := ResetGamePoints(999); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for missing game, got %v", err)
	}
}

func TestGetHistory(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "greetings quiz")
	other := createGame(t, "numbers quiz")

	if _, err := Submit(u.ID, g.ID, 10, 2, 3); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := Submit(u.ID, other.ID, 8, 2, 3); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	history, err := GetHistory(u.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(history))
	}

	byGame, err := GetHistoryByGame(u.ID, g.ID)
	if err != nil {
		t.Fatalf("history by game failed: %v", err)
	}
	if len(byGame) != 1 || byGame[0].GameID != g.ID {
		t.Fatalf("unexpected history by game: %+v", byGame)
	}

	if _, err := GetHistory("missing"); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for missing user, got %v", err)
	}
}
