package normalize

import (
	"testing"

	"github.com/Veraticus/paydesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depositConfig() Config {
	return Config{
		TypeField:     DefaultTypeField,
		DebitTypes:    []string{"D", "Topup", "Y", "I"},
		NumericFields: []string{"amount", "fee"},
	}
}

func TestNormalize_DebitCreditSplit(t *testing.T) {
	n := New(depositConfig())

	got := n.Normalize([]model.RawRecord{
		{"transactiontype": "D", "amount": "1500"},
		{"transactiontype": "W", "amount": "1500"},
		{"transactiontype": "Topup", "amount": 20.5},
	})
	require.Len(t, got, 3)

	assert.Equal(t, 1500.0, got[0]["DB"])
	assert.Equal(t, 0.0, got[0]["CR"])
	assert.Equal(t, 0.0, got[1]["DB"])
	assert.Equal(t, 1500.0, got[1]["CR"])
	assert.Equal(t, 20.5, got[2]["DB"])
}

func TestNormalize_PercentDecoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "encoded space", in: "John%20Doe", want: "John Doe"},
		{name: "plus kept", in: "a+b", want: "a+b"},
		{name: "malformed escape kept", in: "100%", want: "100%"},
		{name: "bad hex kept", in: "%zz%20", want: "%zz%20"},
		{name: "plain", in: "BCA", want: "BCA"},
		{name: "utf8", in: "caf%C3%A9", want: "café"},
		{name: "lone high byte kept", in: "%FF", want: "%FF"},
		{name: "truncated sequence kept", in: "abc%E0%A4", want: "abc%E0%A4"},
		{name: "bad continuation kept", in: "%C3%28", want: "%C3%28"},
	}

	n := New(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize([]model.RawRecord{{"notes": tt.in}})
			assert.Equal(t, tt.want, got[0]["notes"])
		})
	}
}

func TestNormalize_NumericCoercion(t *testing.T) {
	n := New(depositConfig())

	got := n.Normalize([]model.RawRecord{
		{"transactiontype": "D", "amount": "abc", "fee": " 2.5 "},
	})

	// Unparseable amount keeps its display text but aggregates as zero.
	assert.Equal(t, "abc", got[0]["amount"])
	assert.Equal(t, 0.0, got[0].Number("amount"))
	assert.Equal(t, 0.0, got[0]["DB"])
	assert.Equal(t, 2.5, got[0]["fee"])
}

func TestNormalize_NonFiniteAmountKeepsText(t *testing.T) {
	n := New(depositConfig())

	got := n.Normalize([]model.RawRecord{
		{"transactiontype": "C", "amount": "inf", "fee": "Infinity"},
	})

	assert.Equal(t, "inf", got[0]["amount"])
	assert.Equal(t, "Infinity", got[0]["fee"])
	assert.Equal(t, 0.0, got[0]["CR"])
}

func TestNormalize_NoTypeFieldSkipsSplit(t *testing.T) {
	n := New(Config{NumericFields: []string{"amount"}})

	got := n.Normalize([]model.RawRecord{{"amount": "10"}})

	_, hasDB := got[0]["DB"]
	assert.False(t, hasDB)
	assert.Equal(t, 10.0, got[0]["amount"])
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	n := New(depositConfig())
	raw := []model.RawRecord{{"transactiontype": "D", "amount": "5", "name": "a%20b"}}

	_ = n.Normalize(raw)

	assert.Equal(t, "5", raw[0]["amount"])
	assert.Equal(t, "a%20b", raw[0]["name"])
	_, hasDB := raw[0]["DB"]
	assert.False(t, hasDB)
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Empty(t, New(Config{}).Normalize(nil))
}
