package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/browser"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/catalog"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/internal/pricing"
	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

type productsLoadedMsg struct {
	page     int
	products []domain.Product
	err      error
}

type productLoadedMsg struct {
	product domain.Product
	err     error
}

// addToCartMsg asks the app to add qty of a product to the cart.
type addToCartMsg struct {
	productID string
	qty       int
}

// buyNowMsg asks the app to open a single-product checkout.
type buyNowMsg struct {
	product domain.Product
	qty     int
}

type openImageMsg struct{ err error }

type productsModel struct {
	catalog  Catalog
	products []domain.Product
	cursor   int
	page     int
	brand    string
	editing  bool // true when typing a brand filter
	detail   bool
	product  domain.Product
	qty      int
	loading  bool
	err      error
	status   string
	width    int
	height   int
}

func newProductsModel(c Catalog) productsModel {
	return productsModel{catalog: c, page: 1, loading: true}
}

func (m productsModel) Init() tea.Cmd {
	return m.loadPage()
}

func (m productsModel) loadPage() tea.Cmd {
	c := m.catalog
	brand, page := m.brand, m.page
	return func() tea.Msg {
		products, err := c.List(context.Background(), brand, page)
		return productsLoadedMsg{page: page, products: products, err: err}
	}
}

func (m productsModel) loadProduct(id string) tea.Cmd {
	c := m.catalog
	return func() tea.Msg {
		p, err := c.Product(context.Background(), id)
		return productLoadedMsg{product: p, err: err}
	}
}

func (m productsModel) Update(msg tea.Msg) (productsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case productsLoadedMsg:
		if msg.page != m.page {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.products = msg.products
			if m.cursor >= len(m.products) {
				m.cursor = 0
			}
		}

	case productLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "could not load product: " + errText(msg.err)
			return m, nil
		}
		m.product = msg.product
		m.detail = true
		m.qty = clampQty(m.qty, m.product.Stock)

	case cartUpdatedMsg:
		if msg.err != nil {
			m.status = "add to cart failed: " + errText(msg.err)
		} else {
			m.status = fmt.Sprintf("cart: %d item(s)", msg.cart.TotalQuantity())
		}

	case openImageMsg:
		if msg.err != nil {
			m.status = "open failed: " + errText(msg.err)
		}

	case tea.KeyMsg:
		if m.editing {
			return m.updateBrand(msg)
		}
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m productsModel) updateBrand(msg tea.KeyMsg) (productsModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.brand = strings.TrimSpace(m.brand)
		m.page = 1
		m.cursor = 0
		m.loading = true
		return m, m.loadPage()
	case "esc":
		m.editing = false
	default:
		m.brand = brandRule.edit(m.brand, msg.String())
	}
	return m, nil
}

func (m productsModel) updateList(msg tea.KeyMsg) (productsModel, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.editing = true
	case "]":
		if len(m.products) >= catalog.DefaultPageSize {
			m.page++
			m.cursor = 0
			m.loading = true
			return m, m.loadPage()
		}
	case "[":
		if m.page > 1 {
			m.page--
			m.cursor = 0
			m.loading = true
			return m, m.loadPage()
		}
	case "r":
		m.loading = true
		return m, m.loadPage()
	case "enter":
		if m.cursor < len(m.products) {
			m.qty = 1
			m.loading = true
			return m, m.loadProduct(m.products[m.cursor].ID)
		}
	}
	return m, nil
}

func (m productsModel) updateDetail(msg tea.KeyMsg) (productsModel, tea.Cmd) {
	m.status = ""
	p := m.product
	switch msg.String() {
	case "esc":
		m.detail = false
	case "+", "=", "right":
		m.qty = clampQty(m.qty+1, p.Stock)
	case "-", "left":
		m.qty = clampQty(m.qty-1, p.Stock)
	case "a":
		if !p.InStock() {
			m.status = "out of stock"
			return m, nil
		}
		id, q := p.ID, m.qty
		return m, func() tea.Msg { return addToCartMsg{productID: id, qty: q} }
	case "b":
		if !p.InStock() {
			m.status = "out of stock"
			return m, nil
		}
		q := m.qty
		return m, func() tea.Msg { return buyNowMsg{product: p, qty: q} }
	case "o":
		if p.Image == "" {
			m.status = "no image"
			return m, nil
		}
		url := p.Image
		return m, func() tea.Msg { return openImageMsg{err: browser.Open(url)} }
	case "r":
		return m, m.loadProduct(p.ID)
	}
	return m, nil
}

// clampQty bounds a stepper value to [1, stock]. Out-of-stock products stay at 1.
func clampQty(q, stock int) int {
	if q > stock {
		q = stock
	}
	if q < 1 {
		q = 1
	}
	return q
}

func (m productsModel) View() string {
	if m.detail {
		return m.detailView()
	}

	var b strings.Builder
	filter := dimStyle.Render("all brands")
	if m.brand != "" {
		filter = accentStyle.Render(m.brand)
	}
	if m.editing {
		filter = inputPromptStyle.Render("brand: ") + normalStyle.Render(m.brand) + accentStyle.Render("█")
	}
	fmt.Fprintf(&b, " %s  %s\n\n", filter, metaStyle.Render(fmt.Sprintf("page %d", m.page)))

	switch {
	case m.loading && len(m.products) == 0:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != nil:
		b.WriteString(" " + rejectStyle.Render("error: "+errText(m.err)) + "\n")
		return b.String()
	case len(m.products) == 0:
		b.WriteString(" " + dimStyle.Render("no products found") + "\n")
		return b.String()
	}

	for i, p := range m.products {
		cursor := " "
		name := normalStyle.Render(fmt.Sprintf("%-28s", truncStr(p.Name, 28)))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			name = selectedStyle.Render(fmt.Sprintf("%-28s", truncStr(p.Name, 28)))
		}
		brand := metaStyle.Render(fmt.Sprintf("%-12s", truncStr(p.Brand, 12)))
		row := fmt.Sprintf(" %s %s %s %s", cursor, name, brand, priceLabel(p))
		if p.HasDiscount() {
			row += " " + discountStyle.Render("-"+p.DiscountPercent.String()+"%")
		}
		if !p.InStock() {
			row += " " + stockLabel(p.Stock)
		}
		b.WriteString(row + "\n")
	}

	if m.status != "" {
		b.WriteString("\n " + dimStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m productsModel) detailView() string {
	p := m.product
	var b strings.Builder

	fmt.Fprintf(&b, " %s\n", selectedStyle.Render(p.Name))
	meta := []string{}
	if p.Brand != "" {
		meta = append(meta, p.Brand)
	}
	if p.Type != "" {
		meta = append(meta, p.Type)
	}
	if p.Ratings > 0 {
		meta = append(meta, fmt.Sprintf("%.1f★", p.Ratings))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, " %s\n", metaStyle.Render(strings.Join(meta, " · ")))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, " %s  %s\n", priceLabel(p), stockLabel(p.Stock))
	if p.Description != "" {
		fmt.Fprintf(&b, "\n %s\n", normalStyle.Render(p.Description))
	}
	for _, f := range p.Features {
		fmt.Fprintf(&b, "  %s %s\n", accentStyle.Render("·"), dimStyle.Render(f))
	}

	if p.InStock() {
		totals := pricing.SummarizeProduct(p, m.qty)
		fmt.Fprintf(&b, "\n %s %s %s %s   %s %s\n",
			sectionHeaderStyle.Render("quantity"),
			accentStyle.Render("‹"),
			selectedStyle.Render(fmt.Sprintf("%d", m.qty)),
			accentStyle.Render("›"),
			sectionHeaderStyle.Render("total"),
			priceStyle.Render(pricing.Format(totals.Grand)))
		if totals.Discount.IsPositive() {
			fmt.Fprintf(&b, " %s\n", discountStyle.Render("you save "+pricing.Format(totals.Discount)))
		}
	}

	if m.status != "" {
		b.WriteString("\n " + dimStyle.Render(m.status) + "\n")
	}
	return b.String()
}

// priceLabel renders the discounted unit price, with the list price struck
// through when a discount applies.
func priceLabel(p domain.Product) string {
	price := priceStyle.Render(pricing.Format(pricing.UnitPrice(p)))
	if p.HasDiscount() {
		price = strikeStyle.Render(pricing.Format(p.UnitPrice)) + " " + price
	}
	return price
}

func (m productsModel) helpKeys() string {
	if m.detail {
		return helpBar("+/-", "qty", "a", "add to cart", "b", "buy now", "o", "image", "esc", "back")
	}
	if m.editing {
		return helpBar("enter", "filter", "esc", "cancel")
	}
	return helpBar("1-4", "tabs", "j/k", "nav", "enter", "open", "/", "brand", "[/]", "page", "h", "help", "q", "quit")
}
