package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/paydesk/internal/grid"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/screen"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "BCA12…", Truncate("BCA123456", 6))
	assert.Equal(t, "unbounded", Truncate("unbounded", 0))
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 5))
}

func TestRenderView(t *testing.T) {
	view := screen.View{
		Title: "Deposits",
		Columns: []model.ColumnSpec{
			{Key: "transactionid", Label: "Transaction"},
			{Key: "amount", Label: "Amount", Numeric: true},
		},
		Records: []model.Record{
			{"transactionid": "T1", "amount": 1500.0},
			{"transactionid": "T2", "amount": 20.5},
		},
		Keys:           []string{"T1", "T2"},
		Selected:       map[string]bool{"T2": true},
		Totals:         map[string]decimal.Decimal{"amount": decimal.NewFromFloat(1520.5)},
		Sort:           &grid.SortSpec{Key: "amount", Direction: grid.Desc},
		Page:           1,
		TotalPages:     1,
		VisibleCount:   2,
		TotalCount:     5,
		SelectionCount: 1,
	}

	var out bytes.Buffer
	require.NoError(t, RenderView(&out, view))
	text := out.String()

	assert.Contains(t, text, "Deposits")
	assert.Contains(t, text, "page 1/1 · 2 of 5 records · 1 selected")
	assert.Contains(t, text, "AMOUNT ▼")
	assert.Contains(t, text, "TOTAL")
	assert.Contains(t, text, "1,520.50")

	var selectedLine string
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "T2") {
			selectedLine = line
		}
	}
	assert.True(t, strings.HasPrefix(selectedLine, "*"))
}

func TestRenderView_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderView(&out, screen.View{Title: "SMS log", Page: 1, TotalPages: 1}))
	assert.Contains(t, out.String(), "No records match")
}

func TestRenderScreens(t *testing.T) {
	catalog := screen.NewCatalog()
	defs := make([]screen.Definition, 0)
	for _, name := range catalog.Names() {
		d, err := catalog.Get(name)
		require.NoError(t, err)
		defs = append(defs, d)
	}

	var out bytes.Buffer
	require.NoError(t, RenderScreens(&out, defs))
	text := out.String()
	assert.Contains(t, text, "withdrawals")
	assert.Contains(t, text, "bulk-fail!")
	assert.Contains(t, text, "(read-only)")
}

func TestRenderAudit(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderAudit(&out, nil))
	assert.Contains(t, out.String(), "No actions recorded")

	out.Reset()
	require.NoError(t, RenderAudit(&out, []model.AuditEntry{
		{Screen: "deposits", Action: "approve", User: "op1", RecordKeys: []string{"T1", "T2"}, OK: true, CreatedAt: time.Now()},
		{Screen: "sms-log", Action: "expire", User: "op1", Message: "x", CreatedAt: time.Now()},
	}))
	text := out.String()
	assert.Contains(t, text, "T1,T2")
	assert.Contains(t, text, "failed")
}
