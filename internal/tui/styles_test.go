package tui

import (
	"strings"
	"testing"
)

func TestStatusStyleKnownStatus(t *testing.T) {
	for _, status := range []string{"processing", "shipped", "delivered", "cancelled", "pending", "Paid"} {
		t.Run(status, func(t *testing.T) {
			rendered := StatusStyle(status).Render(status)
			if !strings.Contains(rendered, status) {
				t.Errorf("StatusStyle(%q).Render() = %q, want to contain %q", status, rendered, status)
			}
		})
	}
}

func TestStatusStyleUnknownFallback(t *testing.T) {
	rendered := StatusStyle("teleported").Render("teleported")
	if !strings.Contains(rendered, "teleported") {
		t.Errorf("StatusStyle fallback did not render text: %q", rendered)
	}
}

func TestStockLabel(t *testing.T) {
	tests := []struct {
		stock int
		want  string
	}{
		{0, "out of stock"},
		{-1, "out of stock"},
		{3, "only 3 left"},
		{5, "only 5 left"},
		{12, "12 in stock"},
	}
	for _, tc := range tests {
		if got := stockLabel(tc.stock); !strings.Contains(got, tc.want) {
			t.Errorf("stockLabel(%d) = %q, want to contain %q", tc.stock, got, tc.want)
		}
	}
}

func TestShimmerLogoContainsEveryLetter(t *testing.T) {
	for _, frame := range []int{0, 7, 500} {
		out := renderShimmerLogo(frame)
		for _, r := range logoText {
			if !strings.ContainsRune(out, r) {
				t.Errorf("frame %d: logo missing %q", frame, r)
			}
		}
	}
}

func TestHelpEntryFormat(t *testing.T) {
	result := helpEntry("q", "quit")
	if !strings.Contains(result, "q") {
		t.Errorf("helpEntry('q','quit') does not contain key 'q': %q", result)
	}
	if !strings.Contains(result, "quit") {
		t.Errorf("helpEntry('q','quit') does not contain label 'quit': %q", result)
	}
}

func TestHelpBarPairs(t *testing.T) {
	result := helpBar("j/k", "nav", "enter", "open", "dangling")
	for _, want := range []string{"j/k", "nav", "enter", "open"} {
		if !strings.Contains(result, want) {
			t.Errorf("helpBar missing %q: %q", want, result)
		}
	}
	if strings.Contains(result, "dangling") {
		t.Errorf("an unpaired key should be dropped: %q", result)
	}
}

func TestHelpViewCursor(t *testing.T) {
	out := helpView(2)
	if !strings.Contains(out, "> ") {
		t.Error("help view should mark the cursor row")
	}
	for _, item := range helpItems {
		if !strings.Contains(out, item.desc) {
			t.Errorf("help view missing %q", item.desc)
		}
	}
	if !strings.Contains(out, "storefront export-orders FILE") {
		t.Error("help view should list the export command")
	}
}
