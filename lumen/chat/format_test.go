package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessageTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-30 * time.Hour), "Yesterday"},
		{"older", now.Add(-80 * time.Hour), "6/12/2025"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatMessageTime(tc.t, now))
		})
	}
}

func TestFormatConversationTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) // a Sunday

	assert.Equal(t, "09:30", FormatConversationTime(time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "Yesterday", FormatConversationTime(now.Add(-36*time.Hour), now))
	assert.Equal(t, "Thu", FormatConversationTime(time.Date(2025, 6, 12, 12, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Jun 1", FormatConversationTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), now))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "a long...", TruncateText("a long sentence here", 7))
	assert.Equal(t, "", TruncateText("", 5))
}
