// Package notify pushes best-score announcements to a Telegram channel.
// Notification is best-effort: failures are logged, never returned to
// the play path.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/doduclong204/vietvibe/pkg/config"
	"github.com/doduclong204/vietvibe/pkg/logger"
	"github.com/go-telegram/bot"
)

type Notifier struct {
	b      *bot.Bot
	chatID int64
}

// New builds a notifier from the Telegram config. An empty token
// disables notifications and New returns nil without error.
func New(cfg config.TelegramConfig) (*Notifier, error) {
	if cfg.Token == "" {
		logger.Info("telegram notifications disabled, no token configured")
		return nil, nil
	}
	b, err := bot.New(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Notifier{b: b, chatID: cfg.ChatID}, nil
}

// BestScore announces a new game record. Safe to call on a nil
// notifier.
func (n *Notifier) BestScore(ctx context.Context, username, gameName string, score int) {
	if n == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := n.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   fmt.Sprintf("%s set a new record of %d points in %s!", username, score, gameName),
	})
	if err != nil {
		logger.Error("failed to send best score notification", "error", err, "game", gameName)
	}
}
