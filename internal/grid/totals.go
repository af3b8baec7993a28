package grid

import (
	"math"

	"github.com/Veraticus/paydesk/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Totals sums each numeric column over the given records. Values that do not
// parse or are not finite count as zero.
func Totals(records []model.Record, columns []model.ColumnSpec) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, c := range columns {
		if !c.Numeric {
			continue
		}
		sum := decimal.Zero
		for _, r := range records {
			n := r.Number(c.Key)
			if math.IsNaN(n) || math.IsInf(n, 0) {
				continue
			}
			sum = sum.Add(decimal.NewFromFloat(n))
		}
		out[c.Key] = sum
	}
	return out
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders an amount with thousands separators and two decimals.
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return amountPrinter.Sprintf("%.2f", f)
}
