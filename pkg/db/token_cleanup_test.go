package db

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCleanupDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	DB = gdb

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
		DB = nil
	})
}

func TestCleanupExpiredTokens(t *testing.T) {
	setupCleanupDB(t)

	now := time.Now().UTC()
	tokens := []InvalidatedToken{
		{ID: "expired-1", ExpiryTime: now.Add(-time.Hour)},
		{ID: "expired-2", ExpiryTime: now.Add(-time.Minute)},
		{ID: "live", ExpiryTime: now.Add(time.Hour)},
	}
	for _, tok := range tokens {
		if err := DB.Create(&tok).Error; err != nil {
			t.Fatalf("failed to create token %s: %v", tok.ID, err)
		}
	}

	deleted, err := CleanupExpiredTokens(now)
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted tokens, got %d", deleted)
	}

	var remaining []InvalidatedToken
	if err := DB.Find(&remaining).Error; err != nil {
		t.Fatalf("failed to list tokens: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "live" {
		t.Fatalf("expected only the live token to remain, got %+v", remaining)
	}
}

func TestCleanupExpiredTokensEmpty(t *testing.T) {
	setupCleanupDB(t)

	deleted, err := CleanupExpiredTokens(time.Now().UTC())
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected no deletions on empty table, got %d", deleted)
	}
}
