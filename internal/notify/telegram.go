// Package notify delivers outbound booking notifications. The only sink is
// a Telegram chat the barber watches; delivery is best-effort and callers
// never depend on it succeeding.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"berberi/internal/queue"
)

// Telegram sends messages through the Telegram Bot API. With an empty token
// or chat ID the sender is disabled and every call is a logged no-op, so
// local setups run without credentials.
type Telegram struct {
	botToken string
	chatID   string
	client   *http.Client
}

// NewTelegram builds a sender from bot credentials.
func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether credentials are configured.
func (t *Telegram) Enabled() bool { return t.botToken != "" && t.chatID != "" }

// Send formats and delivers the message for a reservation event.
func (t *Telegram) Send(ev queue.ReservationEvent) error {
	return t.sendMessage(formatMessage(ev))
}

func formatMessage(ev queue.ReservationEvent) string {
	switch ev.Type {
	case queue.EventCancelled:
		return fmt.Sprintf(
			"❌ <b>Reservation cancelled</b>\n\n👤 <b>Name:</b> %s\n📅 <b>Date:</b> %s\n🕐 <b>Time:</b> %s - %s\n🔑 <b>Code:</b> <code>%s</code>",
			ev.FullName, ev.Date, ev.StartTime, ev.EndTime, ev.Code)
	case queue.EventChanged:
		return fmt.Sprintf(
			"✏️ <b>Reservation changed</b>\n\n👤 <b>Name:</b> %s\n\n<b>FROM:</b>\n📅 %s\n🕐 %s - %s\n\n<b>TO:</b>\n📅 %s\n🕐 %s - %s\n\n🔑 <b>Code:</b> <code>%s</code>",
			ev.FullName, ev.OldDate, ev.OldStartTime, ev.OldEndTime,
			ev.Date, ev.StartTime, ev.EndTime, ev.Code)
	default:
		return fmt.Sprintf(
			"🆕 <b>New reservation!</b>\n\n👤 <b>Name:</b> %s\n📅 <b>Date:</b> %s\n🕐 <b>Time:</b> %s - %s\n🔑 <b>Code:</b> <code>%s</code>",
			ev.FullName, ev.Date, ev.StartTime, ev.EndTime, ev.Code)
	}
}

func (t *Telegram) sendMessage(text string) error {
	if !t.Enabled() {
		log.Printf("telegram: notifications disabled, set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
		return nil
	}
	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)
	resp, err := t.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API status %d", resp.StatusCode)
	}
	return nil
}
