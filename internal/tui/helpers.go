package tui

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/client"
)

// formatTime renders a relative timestamp for order lists.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// truncStr cuts product and item names to maxLen runes, ending with an
// ellipsis when cut.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen < 1 {
		return ""
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// errText renders err for a status line, preferring the server's own reason.
func errText(err error) string {
	if err == nil {
		return ""
	}
	return client.Reason(err)
}
