package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

var welcomeLines = [...]string{
	"Your cart missed you.",
	"Fresh stock landed while you were away.",
	"Prices checked, shelves dusted.",
	"Everything you left in the cart is still there.",
	"The checkout lane is open.",
	"No queue today. Come on in.",
}

var sellerLines = [...]string{
	"Your orders are waiting.",
	"Customers have been busy.",
	"The sales ledger is open.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2dd4bf")).
		Bold(true).
		Render("S T O R E F R O N T")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"storefront", "Open the store (interactive TUI)"},
		{"storefront login EMAIL", "Sign in (password from STOREFRONT_PASSWORD or stdin)"},
		{"storefront logout", "Clear your session"},
		{"storefront whoami", "Show the current session"},
		{"storefront export-orders FILE", "Export orders for your products to .xlsx"},
		{"storefront --version", "Show version"},
		{"storefront help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  Commands:\n", title)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-30s", c.cmd)), descStyle.Render(c.desc))
	}
	env := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).
		Render("STOREFRONT_API_URL  STOREFRONT_TOKEN  STOREFRONT_HOME  STOREFRONT_LOG_LEVEL  STOREFRONT_TIMEOUT")
	fmt.Printf("\n  Environment:\n    %s\n\n", env)
}

func welcomeLine(role domain.Role) string {
	if role == domain.RoleSeller {
		return sellerLines[rand.IntN(len(sellerLines))]
	}
	return welcomeLines[rand.IntN(len(welcomeLines))]
}

func printSignedIn(s domain.Session) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2dd4bf")).
		Bold(true).
		Render("STOREFRONT")

	msg := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(welcomeLine(s.Role))

	who := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Render(fmt.Sprintf("Signed in as %s", s.Role))

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To shop: storefront")

	fmt.Printf("\n%s\n\n%s\n%s\n\n%s\n\n", title, who, msg, hint)
}
