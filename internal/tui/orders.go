package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/pricing"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

type ordersLoadedMsg struct {
	seller bool
	orders []domain.Order
	err    error
}

// ordersModel lists the customer's orders, or a seller's incoming orders.
type ordersModel struct {
	api      OrdersAPI
	seller   bool
	orders   []domain.Order
	cursor   int
	expanded bool
	loading  bool
	err      error
	width    int
	height   int
}

func newOrdersModel(api OrdersAPI, seller bool) ordersModel {
	return ordersModel{api: api, seller: seller, loading: true}
}

func (m ordersModel) Init() tea.Cmd {
	return m.load()
}

func (m ordersModel) load() tea.Cmd {
	api, seller := m.api, m.seller
	return func() tea.Msg {
		var orders []domain.Order
		var err error
		if seller {
			orders, err = api.SellerOrders(context.Background())
		} else {
			orders, err = api.ListOrders(context.Background())
		}
		return ordersLoadedMsg{seller: seller, orders: orders, err: err}
	}
}

func (m ordersModel) Update(msg tea.Msg) (ordersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ordersLoadedMsg:
		if msg.seller != m.seller {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.orders = msg.orders
			if m.cursor >= len(m.orders) {
				m.cursor = 0
			}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.orders)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			m.expanded = !m.expanded
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m ordersModel) View() string {
	var b strings.Builder

	empty := "you have not placed any orders yet"
	if m.seller {
		empty = "no orders for your products yet"
	}
	switch {
	case m.loading && len(m.orders) == 0:
		b.WriteString(" " + dimStyle.Render("loading orders...") + "\n")
		return b.String()
	case m.err != nil:
		b.WriteString(" " + rejectStyle.Render("error: "+errText(m.err)) + "\n")
		return b.String()
	case len(m.orders) == 0:
		b.WriteString("\n " + dimStyle.Render(empty) + "\n")
		return b.String()
	}

	for i, o := range m.orders {
		active := i == m.cursor
		cursor := " "
		id := metaStyle.Render("#" + o.ShortID())
		if active {
			cursor = accentStyle.Render("▸")
			id = selectedStyle.Render("#" + o.ShortID())
		}
		items := 0
		for _, it := range o.Items {
			items += it.Quantity
		}
		fmt.Fprintf(&b, " %s %s  %s  %s  %s  %s\n",
			cursor, id,
			dimStyle.Render(fmt.Sprintf("%-10s", formatTime(o.CreatedAt))),
			StatusStyle(o.OrderStatus).Render(fmt.Sprintf("%-11s", o.OrderStatus)),
			metaStyle.Render(fmt.Sprintf("%2d item(s)", items)),
			priceStyle.Render(pricing.Format(o.TotalSummary)))

		if active && m.expanded {
			for _, it := range o.Items {
				fmt.Fprintf(&b, "       %s x %d  %s\n",
					normalStyle.Render(truncStr(it.DisplayName(), 32)),
					it.Quantity,
					dimStyle.Render(pricing.Format(it.PriceAtPurchase)))
			}
			pay := o.PaymentMethod.Label()
			if pay == "" {
				pay = "-"
			}
			fmt.Fprintf(&b, "       %s %s  %s %s\n",
				sectionHeaderStyle.Render("payment"), dimStyle.Render(pay),
				sectionHeaderStyle.Render("status"), StatusStyle(o.PaymentStatus).Render(o.PaymentStatus))
		}
	}
	return b.String()
}

func (m ordersModel) helpKeys() string {
	return helpBar("1-4", "tabs", "j/k", "nav", "enter", "details", "r", "refresh", "h", "help", "q", "quit")
}
