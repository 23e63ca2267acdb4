package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

const logoText = "STOREFRONT"

// renderShimmerLogo renders the logo as a slow wave moving from deep teal
// (#12343a) to bright aqua (#5eead4).
func renderShimmerLogo(frame int) string {
	n := len(logoText)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		phase := t*0.08 - x*2.5
		b := math.Sin(phase)*0.5 + 0.5
		b = b*0.8 + 0.15
		if b > 1.0 {
			b = 1.0
		}

		r := clampByte(18 + b*(94-18))
		g := clampByte(52 + b*(234-52))
		bl := clampByte(58 + b*(212-58))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(logoText[i])))
		if i < n-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2dd4bf"))

	// Money
	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	strikeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868")).
			Strikethrough(true)

	discountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	// Status lines
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f0944a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#2dd4bf")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	statusColors = map[string]lipgloss.Color{
		"processing": lipgloss.Color("#60a0e0"),
		"shipped":    lipgloss.Color("#b080d0"),
		"delivered":  lipgloss.Color("#4ade80"),
		"cancelled":  lipgloss.Color("#e06060"),
		"pending":    lipgloss.Color("#f0944a"),
		"paid":       lipgloss.Color("#4ade80"),
		"failed":     lipgloss.Color("#e06060"),
	}
)

// StatusStyle returns the style for an order or payment status. Unknown
// statuses render dim.
func StatusStyle(status string) lipgloss.Style {
	if c, ok := statusColors[strings.ToLower(status)]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

// stockLabel renders remaining stock, warning when low.
func stockLabel(stock int) string {
	switch {
	case stock <= 0:
		return rejectStyle.Render("out of stock")
	case stock <= 5:
		return warnStyle.Render(fmt.Sprintf("only %d left", stock))
	default:
		return dimStyle.Render(fmt.Sprintf("%d in stock", stock))
	}
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries given as alternating key, label pairs.
func helpBar(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}

// helpItem is one row of the help overlay.
type helpItem struct {
	key  string
	desc string
}

var helpItems = []helpItem{
	{"1", "Shop: browse the catalog"},
	{"2", "Cart: change quantities, check out"},
	{"3", "Orders: your order history"},
	{"4", "Sales: orders for your products (sellers)"},
	{"L", "Sign in or register"},
	{"X", "Sign out"},
	{"h", "Toggle this help"},
	{"q", "Quit"},
}

// helpView renders the help overlay with a cursor.
func helpView(cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2dd4bf")).
		Bold(true).
		Render("S T O R E F R O N T")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2dd4bf"))

	commands := []struct{ cmd, desc string }{
		{"storefront", "Open the store (interactive TUI)"},
		{"storefront login EMAIL", "Sign in and store the session"},
		{"storefront logout", "Clear your session"},
		{"storefront whoami", "Show the current session"},
		{"storefront export-orders FILE", "Export seller orders to .xlsx"},
		{"storefront version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", title)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Keys"))
	for i, item := range helpItems {
		key := cmdStyle.Render(fmt.Sprintf("%-6s", item.key))
		prefix := "    "
		if i == cursor {
			key = cursorStyle.Render(fmt.Sprintf("%-6s", item.key))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, key, descStyle.Render(item.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-30s", c.cmd)), descStyle.Render(c.desc))
	}
	return b.String()
}
