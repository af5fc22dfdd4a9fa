// Package formatting renders stored instants and message text into the
// display strings clients receive. Nothing here is persisted.
package formatting

import (
	"fmt"
	"time"
	"unicode/utf8"

	"chatbackend/internal/config"
	llmModels "chatbackend/internal/domain/models/llm"
)

// PreviewPlaceholder is shown for chats without messages
const PreviewPlaceholder = "Start a conversation..."

// clockLayout renders a 12-hour time with a zero-padded hour ("03:04 PM")
const clockLayout = "03:04 PM"

// ClockTime renders t as a time of day in loc
func ClockTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(clockLayout)
}

// RelativeAge describes how long before now t happened: "now" under a
// minute, then whole minutes, hours, and days.
func RelativeAge(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour")
	default:
		return plural(int(diff/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Preview shortens text to config.PreviewLength characters, marking the
// cut with "...". An empty text yields the placeholder.
func Preview(text string) string {
	if text == "" {
		return PreviewPlaceholder
	}
	if utf8.RuneCountInString(text) <= config.PreviewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:config.PreviewLength]) + "..."
}

// MessageView renders a stored message for clients
func MessageView(msg *llmModels.Message, loc *time.Location) llmModels.MessageView {
	return llmModels.MessageView{
		ID:        msg.ID,
		Text:      msg.Text,
		Sender:    msg.Sender,
		Timestamp: ClockTime(msg.Timestamp, loc),
		ChatID:    msg.ChatID,
	}
}
