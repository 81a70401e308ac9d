package notify

import (
	"context"
	"testing"

	"github.com/doduclong204/vietvibe/pkg/config"
)

func TestNewDisabledWithoutToken(t *testing.T) {
	n, err := New(config.TelegramConfig{ChatID: 42})
	if err != nil {
		t.Fatalf("expected no error for an empty token, got %v", err)
	}
	if n != nil {
		t.Fatal("expected a nil notifier when no token is configured")
	}
}

func TestBestScoreNilSafe(t *testing.T) {
	var n *Notifier
	// Must not panic when notifications are disabled.
	n.BestScore(context.Background(), "linh", "Greetings Quiz", 10)
}
