// Package notify отправляет администратору уведомления о новых записях
// через Telegram-бота.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/genetic-miniapp/backend/internal/model"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// TelegramNotifier шлёт сообщение в чат администратора при создании записи
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier создаёт нотификатор. chatID — чат администратора.
func NewTelegramNotifier(b *bot.Bot, chatID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    b,
		chatID: chatID,
		logger: logger,
	}
}

// BookingCreated отправляет уведомление о новой записи.
// Ошибка отправки только логируется — запись уже создана.
func (n *TelegramNotifier) BookingCreated(ctx context.Context, booking *model.Booking) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	text := fmt.Sprintf(
		"🆕 Новая запись #%d\n📅 %s – %s (МСК)\n💬 Формат: %s",
		booking.ID,
		booking.StartUTC.Add(model.MSKOffset).Format("02.01.2006 15:04"),
		booking.EndUTC.Add(model.MSKOffset).Format("15:04"),
		formatLabel(booking.Format),
	)
	if booking.Name != "" {
		text += "\n👤 " + booking.Name
	}
	if booking.Phone != "" {
		text += "\n📞 " + booking.Phone
	}
	if booking.Email != "" {
		text += "\n✉️ " + booking.Email
	}
	if booking.Note != "" {
		text += "\n📝 " + booking.Note
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		n.logger.Error("Failed to send booking notification",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
		)
		return
	}

	n.logger.Info("Booking notification sent", zap.Int64("booking_id", booking.ID))
}

func formatLabel(f model.Format) string {
	if f == model.FormatOnline {
		return "онлайн"
	}
	return "очно"
}
