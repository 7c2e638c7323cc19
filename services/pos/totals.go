package pos

import (
	"fmt"
	"strings"

	"simba/models"
	"simba/utils"

	"github.com/shopspring/decimal"
)

// Totals is the server-side pricing of a cart.
type Totals struct {
	Items    []models.LineItem
	Subtotal float64
	Discount float64
	Tax      float64
	Total    float64
}

// ComputeTotals prices items in decimal and returns float amounts rounded to cents.
// Tax is always zero.
func ComputeTotals(items []models.SaleItemInput, discount *float64) (*Totals, error) {
	if len(items) == 0 {
		return nil, utils.NewValidationError("items", "at least one item is required")
	}

	lines := make([]models.LineItem, 0, len(items))
	subtotal := decimal.Zero
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, utils.NewValidationError(fmt.Sprintf("items[%d].name", i), "is required")
		}
		if item.Quantity < 1 {
			return nil, utils.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
		if item.UnitPrice < 0 {
			return nil, utils.NewValidationError(fmt.Sprintf("items[%d].unitPrice", i), "must not be negative")
		}
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
		lines = append(lines, models.LineItem{
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: line.Round(2).InexactFloat64(),
			TourID:     nonEmpty(item.TourID),
		})
	}

	off := decimal.Zero
	if discount != nil && *discount > 0 {
		off = decimal.NewFromFloat(*discount)
	}
	tax := decimal.Zero
	total := subtotal.Sub(off).Add(tax)

	return &Totals{
		Items:    lines,
		Subtotal: subtotal.Round(2).InexactFloat64(),
		Discount: off.Round(2).InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.Round(2).InexactFloat64(),
	}, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
