// Package normalize turns raw backend rows into display records.
package normalize

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/paydesk/internal/model"
)

// Default field names used by the transaction screens.
const (
	DefaultTypeField   = "transactiontype"
	DefaultAmountField = "amount"
	DefaultDebitField  = "DB"
	DefaultCreditField = "CR"
)

// Config describes how one screen shapes its records.
type Config struct {
	// TypeField holds the transaction-type code. Empty disables the
	// debit/credit split.
	TypeField   string
	AmountField string
	DebitField  string
	CreditField string
	// DebitTypes is the screen's debit vocabulary, e.g. D, Topup, Y, I.
	DebitTypes []string
	// NumericFields are coerced to numbers when they parse.
	NumericFields []string
}

// Normalizer is the single boundary where raw rows become typed records.
type Normalizer struct {
	debit   map[string]struct{}
	numeric map[string]struct{}
	cfg     Config
}

// New builds a Normalizer, filling default field names.
func New(cfg Config) *Normalizer {
	if cfg.AmountField == "" {
		cfg.AmountField = DefaultAmountField
	}
	if cfg.DebitField == "" {
		cfg.DebitField = DefaultDebitField
	}
	if cfg.CreditField == "" {
		cfg.CreditField = DefaultCreditField
	}

	n := &Normalizer{
		cfg:     cfg,
		debit:   make(map[string]struct{}, len(cfg.DebitTypes)),
		numeric: make(map[string]struct{}, len(cfg.NumericFields)),
	}
	for _, t := range cfg.DebitTypes {
		n.debit[t] = struct{}{}
	}
	for _, f := range cfg.NumericFields {
		n.numeric[f] = struct{}{}
	}
	return n
}

// Normalize converts every raw row. It never fails and never mutates its input.
func (n *Normalizer) Normalize(raw []model.RawRecord) []model.Record {
	out := make([]model.Record, 0, len(raw))
	for _, r := range raw {
		out = append(out, n.record(r))
	}
	return out
}

func (n *Normalizer) record(raw model.RawRecord) model.Record {
	rec := make(model.Record, len(raw)+2)
	for field, value := range raw {
		if s, ok := value.(string); ok {
			value = Decode(s)
		}
		if _, numeric := n.numeric[field]; numeric {
			// Unparseable values keep their display text; Record.Number reads them as 0.
			if f, ok := model.ToNumber(value); ok {
				value = f
			}
		}
		rec[field] = value
	}

	if n.cfg.TypeField != "" {
		amount := rec.Number(n.cfg.AmountField)
		if n.IsDebit(rec.Text(n.cfg.TypeField)) {
			rec[n.cfg.DebitField] = amount
			rec[n.cfg.CreditField] = 0.0
		} else {
			rec[n.cfg.DebitField] = 0.0
			rec[n.cfg.CreditField] = amount
		}
	}
	return rec
}

// IsDebit reports whether a type code belongs to the debit vocabulary.
func (n *Normalizer) IsDebit(code string) bool {
	_, ok := n.debit[code]
	return ok
}

// Decode percent-decodes s. A malformed escape or a result that is not valid
// UTF-8 returns s unchanged. Plus signs are kept as-is.
func Decode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	decoded, err := url.PathUnescape(s)
	if err != nil || !utf8.ValidString(decoded) {
		return s
	}
	return decoded
}
