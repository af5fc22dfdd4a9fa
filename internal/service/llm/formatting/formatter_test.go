package formatting

import (
	"strings"
	"testing"
	"time"

	llmModels "chatbackend/internal/domain/models/llm"
)

func TestRelativeAge(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 0, want: "now"},
		{ago: 59 * time.Second, want: "now"},
		{ago: time.Minute, want: "1 min ago"},
		{ago: 45*time.Minute + 30*time.Second, want: "45 min ago"},
		{ago: time.Hour, want: "1 hour ago"},
		{ago: 5*time.Hour + 59*time.Minute, want: "5 hours ago"},
		{ago: 24 * time.Hour, want: "1 day ago"},
		{ago: 47 * time.Hour, want: "1 day ago"},
		{ago: 72 * time.Hour, want: "3 days ago"},
		{ago: -time.Minute, want: "now"}, // clock skew
	}

	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.ago.String(), func(t *testing.T) {
			if got := RelativeAge(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("RelativeAge(-%s) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}

func TestClockTime(t *testing.T) {
	ts := time.Date(2025, 3, 10, 15, 4, 0, 0, time.UTC)

	if got := ClockTime(ts, nil); got != "03:04 PM" {
		t.Errorf("ClockTime(UTC) = %q, want 03:04 PM", got)
	}
	if got := ClockTime(ts.Add(-15*time.Hour), time.UTC); got != "12:04 AM" {
		t.Errorf("ClockTime(midnight) = %q, want 12:04 AM", got)
	}

	tokyo := time.FixedZone("JST", 9*60*60)
	if got := ClockTime(ts, tokyo); got != "12:04 AM" {
		t.Errorf("ClockTime(JST) = %q, want 12:04 AM", got)
	}
}

func TestPreview(t *testing.T) {
	exactly100 := strings.Repeat("x", 100)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: PreviewPlaceholder},
		{name: "short", text: "Hello", want: "Hello"},
		{name: "exactly limit", text: exactly100, want: exactly100},
		{name: "over limit", text: exactly100 + "yz", want: exactly100 + "..."},
		{name: "multibyte", text: strings.Repeat("ü", 101), want: strings.Repeat("ü", 100) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.text); got != tt.want {
				t.Errorf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageView(t *testing.T) {
	msg := &llmModels.Message{
		ID:        "m1",
		ChatID:    "c1",
		Text:      "Hello",
		Sender:    llmModels.SenderUser,
		Timestamp: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}
	view := MessageView(msg, time.UTC)
	want := llmModels.MessageView{ID: "m1", Text: "Hello", Sender: llmModels.SenderUser, Timestamp: "09:30 AM", ChatID: "c1"}
	if view != want {
		t.Errorf("MessageView() = %+v, want %+v", view, want)
	}
}
