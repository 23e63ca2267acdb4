// Package export writes seller orders to spreadsheets.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// SheetName is the worksheet that holds the order rows.
const SheetName = "Orders"

// Headers are the column titles, one row per order item.
var Headers = []string{
	"Order ID", "Order", "Created", "Order Status", "Payment Status",
	"Product ID", "Product", "Quantity", "Price At Purchase", "Line Total", "Order Total",
}

// WriteOrders writes orders as an .xlsx workbook to w.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("export.WriteOrders: add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range Headers {
		header.AddCell().SetString(h)
	}

	for _, o := range orders {
		if len(o.Items) == 0 {
			addOrderRow(sheet, o, nil)
			continue
		}
		for i := range o.Items {
			addOrderRow(sheet, o, &o.Items[i])
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("export.WriteOrders: write: %w", err)
	}
	return nil
}

// WriteOrdersFile writes orders to the workbook at path, replacing it.
func WriteOrdersFile(path string, orders []domain.Order) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export.WriteOrdersFile: %w", err)
	}
	if err := WriteOrders(f, orders); err != nil {
		f.Close() //nolint:errcheck // already failing
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export.WriteOrdersFile: %w", err)
	}
	return nil
}

func addOrderRow(sheet *xlsx.Sheet, o domain.Order, item *domain.OrderItem) {
	row := sheet.AddRow()
	row.AddCell().SetString(o.ID)
	row.AddCell().SetString(o.ShortID())
	row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04:05"))
	row.AddCell().SetString(o.OrderStatus)
	row.AddCell().SetString(o.PaymentStatus)
	if item == nil {
		for i := 0; i < 5; i++ {
			row.AddCell().SetString("")
		}
	} else {
		row.AddCell().SetString(item.ProductID)
		row.AddCell().SetString(item.DisplayName())
		row.AddCell().SetInt(item.Quantity)
		row.AddCell().SetFloat(item.PriceAtPurchase.InexactFloat64())
		lineTotal := item.PriceAtPurchase.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		row.AddCell().SetFloat(lineTotal.InexactFloat64())
	}
	row.AddCell().SetFloat(o.TotalSummary.Round(2).InexactFloat64())
}
