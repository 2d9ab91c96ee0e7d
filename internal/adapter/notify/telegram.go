package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier tells the raffle operators about reservation activity in a Telegram chat.
type TelegramNotifier struct {
	bot    sender
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	log.Printf("Telegram bot authorized as %s", bot.Self.UserName)

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Publish(_ context.Context, event domain.ReservationEvent) error {
	text := formatEvent(event)
	if text == "" {
		return nil
	}

	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		return fmt.Errorf("telegram notify: %w", err)
	}

	return nil
}

func formatEvent(e domain.ReservationEvent) string {
	switch e.Type {
	case domain.EventReservationCreated:
		return fmt.Sprintf("🎟️ New reservation %s\nRaffle: %s\nNumbers: %s\nTotal: %s",
			e.ReservationID, e.RaffleID, joinNumbers(e.Numbers), amount(e))
	case domain.EventPaymentBound:
		return fmt.Sprintf("🧾 Payment code %s issued for reservation %s (%s)", e.PaymentID, e.ReservationID, amount(e))
	case domain.EventReservationPaid:
		return fmt.Sprintf("✅ Reservation %s paid (%s, payment %s)", e.ReservationID, amount(e), e.PaymentID)
	case domain.EventReservationsExpired:
		return fmt.Sprintf("⌛ %d reservations expired in raffle %s", e.Count, e.RaffleID)
	default:
		return ""
	}
}

func joinNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}

	return strings.Join(parts, ", ")
}

func amount(e domain.ReservationEvent) string {
	if e.Amount == nil {
		return "-"
	}

	return e.Amount.StringFixed(2)
}
