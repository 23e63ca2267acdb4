package tui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/client"
)

func TestFormatTime(t *testing.T) {
	old := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "-"},
		{"seconds", time.Now().Add(-10 * time.Second), "just now"},
		{"minutes", time.Now().Add(-5 * time.Minute), "5m ago"},
		{"hours", time.Now().Add(-3 * time.Hour), "3h ago"},
		{"days", time.Now().Add(-50 * time.Hour), "2d ago"},
		{"months", old, "2024-03-09"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatTime(tc.t); got != tc.want {
				t.Errorf("formatTime() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrText(t *testing.T) {
	if got := errText(nil); got != "" {
		t.Errorf("errText(nil) = %q", got)
	}
	wrapped := fmt.Errorf("order.PlaceSingle: %w", &client.HTTPError{StatusCode: 400, Message: "Product is out of stock"})
	if got := errText(wrapped); got != "Product is out of stock" {
		t.Errorf("errText(http) = %q, want the server reason", got)
	}
	if got := errText(errors.New("boom")); got != "boom" {
		t.Errorf("errText(plain) = %q", got)
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Desk Lamp", 28, "Desk Lamp"},
		{"Desk Lamp", 9, "Desk Lamp"},
		{"Ergonomic Office Chair", 10, "Ergonomic…"},
		{"Crème brûlée torch", 6, "Crème…"},
		{"Lamp", 0, ""},
	}
	for _, tc := range tests {
		if got := truncStr(tc.in, tc.max); got != tc.want {
			t.Errorf("truncStr(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
