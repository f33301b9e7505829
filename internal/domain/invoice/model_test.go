package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	items := []*LineItem{
		{
			Description: "Développement",
			Quantity:    decimal.NewFromInt(3),
			UnitPrice:   decimal.NewFromInt(250),
		},
		{
			Description: "Hébergement",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(120),
		},
	}

	subtotal, taxAmount, total := ComputeTotals(items, decimal.NewFromFloat(20.0))

	assert.True(t, decimal.NewFromInt(870).Equal(subtotal), "subtotal %s", subtotal)
	assert.True(t, decimal.NewFromInt(174).Equal(taxAmount), "tax %s", taxAmount)
	assert.True(t, decimal.NewFromInt(1044).Equal(total), "total %s", total)

	// each line total is rewritten from quantity and unit price
	assert.True(t, decimal.NewFromInt(750).Equal(items[0].Total))
	assert.True(t, decimal.NewFromInt(120).Equal(items[1].Total))
}

func TestComputeTotalsCustomRate(t *testing.T) {
	items := []*LineItem{
		{
			Description: "Conseil",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(510),
		},
	}

	subtotal, taxAmount, total := ComputeTotals(items, decimal.NewFromFloat(20.0))
	assert.True(t, decimal.NewFromInt(1020).Equal(subtotal))
	assert.True(t, decimal.NewFromInt(204).Equal(taxAmount))
	assert.True(t, decimal.NewFromInt(1224).Equal(total))
}

func TestComputeTotalsZeroRate(t *testing.T) {
	items := []*LineItem{
		{
			Description: "Formation",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(500),
		},
	}

	subtotal, taxAmount, total := ComputeTotals(items, decimal.Zero)
	assert.True(t, decimal.NewFromInt(500).Equal(subtotal))
	assert.True(t, taxAmount.IsZero())
	assert.True(t, decimal.NewFromInt(500).Equal(total))
}

func TestComputeTotalsNoItems(t *testing.T) {
	subtotal, taxAmount, total := ComputeTotals(nil, decimal.NewFromFloat(20.0))
	assert.True(t, subtotal.IsZero())
	assert.True(t, taxAmount.IsZero())
	assert.True(t, total.IsZero())
}

func TestLineItemValidate(t *testing.T) {
	item := &LineItem{
		Description: "Support",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(90),
	}
	assert.NoError(t, item.Validate())

	item.Quantity = decimal.NewFromInt(-1)
	assert.Error(t, item.Validate())

	item.Quantity = decimal.NewFromInt(1)
	item.UnitPrice = decimal.NewFromFloat(-0.01)
	assert.Error(t, item.Validate())
}
