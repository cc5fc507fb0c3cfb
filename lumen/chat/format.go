package chat

import (
	"fmt"
	"strings"
	"time"
)

// FormatMessageTime renders a message timestamp relative to now
// ("Just now", "5m ago", "3h ago", "Yesterday", else a date).
func FormatMessageTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 48*time.Hour:
		return "Yesterday"
	default:
		return t.Format("1/2/2006")
	}
}

// FormatConversationTime renders a conversation timestamp for list rows:
// time of day for today, "Yesterday", weekday within a week, else month/day.
func FormatConversationTime(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days == 0:
		return t.Format("15:04")
	case days == 1:
		return "Yesterday"
	case days < 7:
		return t.Format("Mon")
	default:
		return t.Format("Jan 2")
	}
}

// TruncateText shortens text to maxLength runes, appending an ellipsis.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}
