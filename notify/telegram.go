// Copyright (c) 2025 BVK Chaitanya

package notify

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-telegram/bot"
)

// TelegramSecrets holds the bot token and destination chat for telegram
// alerts.
type TelegramSecrets struct {
	BotToken string `json:"token"`

	ChatID int64 `json:"chat_id"`
}

func (s *TelegramSecrets) Check() error {
	if len(s.BotToken) == 0 {
		return fmt.Errorf("telegram bot token cannot be empty: %w", os.ErrInvalid)
	}
	if s.ChatID == 0 {
		return fmt.Errorf("telegram chat id cannot be zero: %w", os.ErrInvalid)
	}
	return nil
}

// TelegramSender delivers alerts as messages from a telegram bot.
type TelegramSender struct {
	bot *bot.Bot

	chatID int64
}

func NewTelegramSender(secrets *TelegramSecrets) (*TelegramSender, error) {
	if err := secrets.Check(); err != nil {
		return nil, err
	}
	b, err := bot.New(secrets.BotToken, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("could not create telegram bot: %w", err)
	}
	return &TelegramSender{bot: b, chatID: secrets.ChatID}, nil
}

func (s *TelegramSender) SendMessage(ctx context.Context, at time.Time, msg string) error {
	m := &bot.SendMessageParams{
		ChatID: s.chatID,
		Text:   msg,
	}
	if _, err := s.bot.SendMessage(ctx, m); err != nil {
		return fmt.Errorf("could not send telegram message: %w", err)
	}
	return nil
}
