// Package telegram implements the messaging capability over the Telegram
// Bot API.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger sends the digest to a single configured chat or channel.
type Messenger struct {
	bot        *tgbotapi.BotAPI
	httpClient *http.Client
	chatID     int64
	channel    string // set instead of chatID for "@channel" targets
	logger     *slog.Logger
}

// New creates a Messenger for the given bot token and chat target. The
// target is either a numeric chat ID or a channel username starting with "@".
func New(token, chat string, logger *slog.Logger) (*Messenger, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	m := &Messenger{bot: bot, httpClient: httpClient, logger: logger}
	if strings.HasPrefix(chat, "@") {
		m.channel = chat
	} else {
		id, err := strconv.ParseInt(chat, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat target %q: %w", chat, err)
		}
		m.chatID = id
	}
	return m, nil
}

// SendText sends a plain text message to the configured chat.
func (m *Messenger) SendText(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(m.chatID, text)
	msg.ChannelUsername = m.channel
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	m.logger.Info("text message sent", "chars", len(text))
	return nil
}

// SendPhoto sends an image, with a caption when one is given.
func (m *Messenger) SendPhoto(ctx context.Context, image []byte, caption string) error {
	photo := tgbotapi.NewPhoto(m.chatID, tgbotapi.FileBytes{Name: "weather_map.png", Bytes: image})
	photo.ChannelUsername = m.channel
	photo.Caption = caption
	if err := m.send(ctx, photo); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	m.logger.Info("photo sent", "bytes", len(image), "caption_chars", len(caption))
	return nil
}

// Release relinquishes the session's network resources. Safe to call more
// than once.
func (m *Messenger) Release() {
	m.httpClient.CloseIdleConnections()
}

// send respects context cancellation around the blocking Bot API call.
func (m *Messenger) send(ctx context.Context, c tgbotapi.Chattable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		_, err := m.bot.Send(c)
		done <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
