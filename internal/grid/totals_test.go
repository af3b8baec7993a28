package grid

import (
	"math"
	"testing"

	"github.com/Veraticus/paydesk/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotals(t *testing.T) {
	columns := []model.ColumnSpec{
		{Key: "DB", Numeric: true},
		{Key: "CR", Numeric: true},
		{Key: "bankcode"},
	}
	records := []model.Record{
		{"DB": 0.1, "CR": 0.0},
		{"DB": 0.2, "CR": 1500.0},
		{"DB": "n/a", "CR": 250.5},
	}

	totals := Totals(records, columns)

	assert.True(t, decimal.RequireFromString("0.3").Equal(totals["DB"]), totals["DB"].String())
	assert.True(t, decimal.RequireFromString("1750.5").Equal(totals["CR"]))
	assert.NotContains(t, totals, "bankcode")
}

func TestTotals_NonFiniteCountsAsZero(t *testing.T) {
	columns := []model.ColumnSpec{{Key: "amount", Numeric: true}}
	records := []model.Record{
		{"amount": "inf"},
		{"amount": math.Inf(1)},
		{"amount": math.NaN()},
		{"amount": 12.5},
	}

	var totals map[string]decimal.Decimal
	assert.NotPanics(t, func() { totals = Totals(records, columns) })
	assert.True(t, decimal.RequireFromString("12.5").Equal(totals["amount"]), totals["amount"].String())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234,567.50", FormatAmount(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
