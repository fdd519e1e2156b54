// Package telegram sends tenant-facing notifications through the Telegram
// Bot API.
package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger delivers a text message to a Telegram chat. Chat IDs are kept
// as strings since they come straight from tenant settings.
type Messenger interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Bot wraps the Telegram Bot API client.
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewBot authenticates against the Bot API. Returns an error when the token
// is rejected.
func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{api: api}, nil
}

// SendMessage posts an HTML-formatted message to the chat.
func (b *Bot) SendMessage(ctx context.Context, chatID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram chat id %q: %w", chatID, err)
	}

	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// Noop drops all messages. Used when no bot token is configured.
type Noop struct{}

func (Noop) SendMessage(ctx context.Context, chatID, text string) error { return nil }

var (
	_ Messenger = (*Bot)(nil)
	_ Messenger = Noop{}
)
