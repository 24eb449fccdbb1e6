package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/scorebot/internal/service"
)

const commandTimeout = 30 * time.Second

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	sender  sender
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, predictionService *service.PredictionService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramBot{
		bot:     bot,
		sender:  bot,
		handler: NewHandler(predictionService),
		chatID:  chatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			t.handle(ctx, update)
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) handle(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	start := time.Now()
	msg := t.handler.HandleCommand(ctx, update)
	slog.Debug("Handled command",
		"command", update.Message.Command(),
		"chat_id", update.Message.Chat.ID,
		"duration", time.Since(start))

	if err := t.send(msg); err != nil {
		slog.Error("Error sending message", "chat_id", msg.ChatID, "error", err)
	}
}

// SendMessage posts text to the configured chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, truncate(text))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	err := t.send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}

// send delivers msg. A Markdown message Telegram cannot parse is sent again
// as plain text.
func (t *TelegramBot) send(msg tgbotapi.MessageConfig) error {
	_, err := t.sender.Send(msg)
	if err == nil || msg.ParseMode == "" || !isEntityError(err) {
		return err
	}

	slog.Warn("Markdown rejected, resending as plain text", "chat_id", msg.ChatID, "error", err)
	msg.ParseMode = ""
	_, err = t.sender.Send(msg)
	return err
}

func isEntityError(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 400 && strings.Contains(apiErr.Message, "can't parse entities")
}
