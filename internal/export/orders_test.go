package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

func sampleOrders() []domain.Order {
	return []domain.Order{
		{
			ID:            "65f1c2d3e4a5b6c7d8e9f001",
			CreatedAt:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			OrderStatus:   "processing",
			PaymentStatus: "pending",
			Items: []domain.OrderItem{
				{ProductID: "p1", Quantity: 2, PriceAtPurchase: decimal.NewFromInt(80), ProductInfo: &domain.ProductInfo{Name: "Lamp"}},
				{ProductID: "p2", Quantity: 1, PriceAtPurchase: decimal.RequireFromString("4.5")},
			},
			TotalSummary: decimal.RequireFromString("164.5"),
		},
		{ID: "empty-order", OrderStatus: "cancelled"},
	}
}

func TestWriteOrders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, sampleOrders()))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, SheetName, sheet.Name)
	require.Len(t, sheet.Rows, 4, "header, two items, one empty order")

	header := sheet.Rows[0].Cells
	require.Len(t, header, len(Headers))
	assert.Equal(t, "Order ID", header[0].Value)

	first := sheet.Rows[1].Cells
	assert.Equal(t, "65f1c2d3", first[1].Value)
	assert.Equal(t, "2024-03-01 10:00:00", first[2].Value)
	assert.Equal(t, "Lamp", first[6].Value)
	assert.Equal(t, "2", first[7].Value)

	second := sheet.Rows[2].Cells
	assert.Equal(t, "Product", second[6].Value, "missing product info falls back")

	empty := sheet.Rows[3].Cells
	assert.Equal(t, "empty-order", empty[0].Value)
	assert.Len(t, empty, len(Headers))
}

func TestWriteOrdersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, WriteOrdersFile(path, sampleOrders()))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Len(t, file.Sheets[0].Rows, 4)

	assert.Error(t, WriteOrdersFile(filepath.Join(t.TempDir(), "missing", "orders.xlsx"), nil))
}
