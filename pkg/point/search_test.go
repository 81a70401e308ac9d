package point

import (
	"testing"
	"time"

	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/internal/testutil"
	"github.com/doduclong204/vietvibe/pkg/pagination"
)

func seedSearchData(t *testing.T) (userA, userB *db.User, quiz, listening *db.Game) {
	t.Helper()
	userA = createUser(t, "linh")
	userB = createUser(t, "minh")
	quiz = createGame(t, "Greetings Quiz")
	listening = createGame(t, "Listening Drill")

	// score+bonus totals: 5, 15, 25
	if _, err := Submit(userA.ID, quiz.ID, 5, 1, 3); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := Submit(userA.ID, listening.ID, 15, 1, 3); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := Submit(userB.ID, quiz.ID, 20, 3, 3); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return userA, userB, quiz, listening
}

func intPtr(v int) *int { return &v }

func TestSearchScoreRange(t *testing.T) {
	testutil.SetupTestDB(t)
	seedSearchData(t)

	page, err := Search(Filter{MinScore: intPtr(10), MaxScore: intPtr(20)}, pagination.Request{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Result) != 1 {
		t.Fatalf("expected exactly one point in [10,20], got %d", len(page.Result))
	}
	if got := page.Result[0].Score + page.Result[0].Bonus; got != 15 {
		t.Fatalf("expected the total-15 point, got %d", got)
	}
}

func TestSearchKeywordMatchesUserOrGame(t *testing.T) {
	testutil.SetupTestDB(t)
	_, userB, _, _ := seedSearchData(t)

	// "li" matches username "linh" and game "Listening Drill"; userB's
	// quiz point matches neither.
	page, err := Search(Filter{Keyword: "LI"}, pagination.Request{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Result) != 2 {
		t.Fatalf("expected 2 keyword matches, got %d", len(page.Result))
	}
	for _, rec := range page.Result {
		if rec.UserID == userB.ID {
			t.Fatalf("keyword should not match user %s's point: %+v", userB.Username, rec)
		}
	}
}

func TestSearchConjunctiveFilters(t *testing.T) {
	testutil.SetupTestDB(t)
	seedSearchData(t)

	page, err := Search(Filter{Username: "linh", GameName: "quiz"}, pagination.Request{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Result) != 1 {
		t.Fatalf("expected 1 match for username AND game name, got %d", len(page.Result))
	}
	if page.Result[0].UserName != "linh" || page.Result[0].GameName != "Greetings Quiz" {
		t.Fatalf("unexpected match: %+v", page.Result[0])
	}
}

func TestSearchCreatedAtRange(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "quiz")

	old := db.Point{UserID: u.ID, GameID: g.ID, Score: 3, CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}
	recent := db.Point{UserID: u.ID, GameID: g.ID, Score: 4, CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	if err := db.DB.Create(&old).Error; err != nil {
		t.Fatalf("failed to seed point: %v", err)
	}
	if err := db.DB.Create(&recent).Error; err != nil {
		t.Fatalf("failed to seed point: %v", err)
	}

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	page, err := Search(Filter{From: &from}, pagination.Request{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Result) != 1 || page.Result[0].Score != 4 {
		t.Fatalf("expected only the recent point, got %+v", page.Result)
	}

	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	page, err = Search(Filter{To: &to}, pagination.Request{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Result) != 1 || page.Result[0].Score != 3 {
		t.Fatalf("expected only the old point, got %+v", page.Result)
	}
}

func TestSearchDefaultOrderAndPagination(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "quiz")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := db.Point{UserID: u.ID, GameID: g.ID, Score: i, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.DB.Create(&p).Error; err != nil {
			t.Fatalf("failed to seed point %d: %v", i, err)
		}
	}

	page, err := Search(Filter{}, pagination.Request{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.Meta.Total != 5 || page.Meta.Pages != 3 || page.Meta.Current != 1 || page.Meta.PageSize != 2 {
		t.Fatalf("unexpected meta: %+v", page.Meta)
	}
	if len(page.Result) != 2 {
		t.Fatalf("expected 2 results on first page, got %d", len(page.Result))
	}
	// Newest first.
	if page.Result[0].Score != 4 || page.Result[1].Score != 3 {
		t.Fatalf("expected newest-first order, got scores %d, %d", page.Result[0].Score, page.Result[1].Score)
	}

	last, err := Search(Filter{}, pagination.Request{Page: 3, PageSize: 2})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(last.Result) != 1 || last.Result[0].Score != 0 {
		t.Fatalf("expected the oldest point alone on the last page, got %+v", last.Result)
	}
}

func TestSearchTieBrokenByIDDescending(t *testing.T) {
	testutil.SetupTestDB(t)
	u := createUser(t, "linh")
	g := createGame(t, "quiz")

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		p := db.Point{UserID: u.ID, GameID: g.ID, Score: i, CreatedAt: at}
		if err := db.DB.Create(&p).Error; err != nil {
			t.Fatalf("failed to seed point %d: %v", i, err)
		}
	}

	page, err := Search(Filter{}, pagination.Request{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for i := 1; i < len(page.Result); i++ {
		if page.Result[i-1].ID < page.Result[i].ID {
			t.Fatalf("expected descending IDs on equal timestamps, got %d before %d",
				page.Result[i-1].ID, page.Result[i].ID)
		}
	}
}

func TestGetPointsByScoreRange(t *testing.T) {
	testutil.SetupTestDB(t)
	seedSearchData(t)

	records, err := GetPointsByScoreRange(10, 20)
	if err != nil {
		t.Fatalf("range query failed: %v", err)
	}
	if len(records) != 1 || records[0].Score+records[0].Bonus != 15 {
		t.Fatalf("expected only the total-15 point, got %+v", records)
	}
}
