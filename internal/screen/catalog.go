package screen

import (
	"fmt"
	"sort"

	"github.com/Veraticus/paydesk/internal/action"
	"github.com/Veraticus/paydesk/internal/backend"
	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/config"
	"github.com/Veraticus/paydesk/internal/grid"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/Veraticus/paydesk/internal/normalize"
	"github.com/shopspring/decimal"
)

// DefaultDebitTypes is the debit vocabulary of the transaction screens.
var DefaultDebitTypes = []string{"D", "Topup", "Y", "I"}

var typeLabels = map[string]string{
	"D":     "Deposit",
	"W":     "Withdraw",
	"Topup": "Topup",
	"Y":     "Adjustment In",
	"I":     "Interest",
	"N":     "Adjustment Out",
	"C":     "Charge",
}

// Catalog holds the screens the application offers.
type Catalog struct {
	screens map[string]Definition
}

// NewCatalog returns the built-in screens.
func NewCatalog() *Catalog {
	c := &Catalog{screens: make(map[string]Definition)}
	for _, d := range []Definition{
		depositsScreen(),
		withdrawalsScreen(),
		depositQueueScreen(),
		smsLogScreen(),
		mutationsScreen(),
	} {
		c.screens[d.Name] = d
	}
	return c
}

// Names returns the screen names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.screens))
	for name := range c.screens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a screen definition.
func (c *Catalog) Get(name string) (Definition, error) {
	d, ok := c.screens[name]
	if !ok {
		return Definition{}, common.NewUserError(
			fmt.Sprintf("unknown screen %q", name), common.ErrUnknownScreen)
	}
	return d, nil
}

// ApplyOverrides adjusts screens from configuration. Unknown names are an
// error so typos in the config file do not go unnoticed.
func (c *Catalog) ApplyOverrides(overrides map[string]config.ScreenOverride) error {
	for name, o := range overrides {
		d, ok := c.screens[name]
		if !ok {
			return fmt.Errorf("%w: screens.%s: %w", common.ErrInvalidConfig, name, common.ErrUnknownScreen)
		}
		if o.PageSize < 0 || o.SelectionLimit < 0 {
			return fmt.Errorf("%w: screens.%s: sizes must not be negative", common.ErrInvalidConfig, name)
		}
		if o.PageSize > 0 {
			d.PageSize = o.PageSize
		}
		if o.SelectionLimit > 0 {
			d.SelectionLimit = o.SelectionLimit
		}
		if len(o.DebitTypes) > 0 {
			d.Normalize.DebitTypes = append([]string(nil), o.DebitTypes...)
		}
		if o.ListPath != "" {
			d.List.Path = o.ListPath
		}
		c.screens[name] = d
	}
	return nil
}

func textColumn(key, label string, width int) model.ColumnSpec {
	return model.ColumnSpec{Key: key, Label: label, MinWidth: width}
}

// amountColumn renders grouped two-decimal amounts, keeping the original text
// when the value is not a number.
func amountColumn(key, label string) model.ColumnSpec {
	return model.ColumnSpec{
		Key:      key,
		Label:    label,
		MinWidth: 12,
		Numeric:  true,
		Render: func(r model.Record) string {
			n, ok := model.ToNumber(r.Get(key))
			if !ok {
				return r.Text(key)
			}
			return grid.FormatAmount(decimal.NewFromFloat(n))
		},
	}
}

// balanceColumn is a running figure, so it is not totalled.
func balanceColumn() model.ColumnSpec {
	c := amountColumn("balance", "Balance")
	c.Numeric = false
	return c
}

func typeColumn(key string) model.ColumnSpec {
	label := func(r model.Record) string {
		code := r.Text(key)
		if l, ok := typeLabels[code]; ok {
			return l
		}
		return code
	}
	return model.ColumnSpec{
		Key:         key,
		Label:       "Type",
		MinWidth:    8,
		Render:      label,
		FilterValue: func(r model.Record) any { return label(r) },
	}
}

func transactionColumns() []model.ColumnSpec {
	return []model.ColumnSpec{
		textColumn("transactionid", "Transaction", 12),
		textColumn("insertdate", "Date", 19),
		textColumn("merchantcode", "Merchant", 8),
		textColumn("customerid", "Customer", 10),
		textColumn("bankcode", "Bank", 6),
		textColumn("accountsrc", "From", 10),
		textColumn("accountdst", "To", 10),
		amountColumn("amount", "Amount"),
		amountColumn("fee", "Fee"),
		textColumn("status", "Status", 8),
		textColumn("agent", "Agent", 8),
		textColumn("notes", "Notes", 12),
	}
}

func transactionNormalize() normalize.Config {
	return normalize.Config{
		DebitTypes:    DefaultDebitTypes,
		NumericFields: []string{"amount", "fee"},
	}
}

var keyTransaction = []string{"transactionid"}

func depositsScreen() Definition {
	ep := func(path string) backend.Endpoint { return backend.Endpoint{Path: "deposit/" + path} }
	return Definition{
		Name:            "deposits",
		Title:           "Deposits",
		Description:     "Deposit transactions by date range",
		List:            ep("list.php"),
		Columns:         transactionColumns(),
		KeyFields:       keyTransaction,
		Normalize:       transactionNormalize(),
		RequiredParams:  []string{"datefrom", "dateto"},
		DateFromParam:   "datefrom",
		DateToParam:     "dateto",
		MaxDateSpanDays: 31,
		PageSize:        10,
		Actions: []action.Action{
			{Name: "approve", Label: "Approve", Endpoint: ep("approve.php"), RecordFields: keyTransaction},
			{Name: "fail", Label: "Fail", Endpoint: ep("fail.php"), RecordFields: keyTransaction, Destructive: true, ReasonParam: "notes"},
			{Name: "reassign", Label: "Reassign", Endpoint: ep("reassign.php"), RecordFields: keyTransaction, RequiredParams: []string{"agent"}},
			{Name: "resend", Label: "Resend callback", Endpoint: ep("resend-callback.php"), RecordFields: []string{"transactionid", "merchantcode"}},
			{Name: "edit-amount", Label: "Edit amount", Endpoint: ep("edit-amount.php"), RecordFields: keyTransaction, RequiredParams: []string{"amount"}},
		},
	}
}

func withdrawalsScreen() Definition {
	ep := func(path string) backend.Endpoint { return backend.Endpoint{Path: "withdrawal/" + path} }
	return Definition{
		Name:            "withdrawals",
		Title:           "Withdrawals",
		Description:     "Withdrawal transactions by date range",
		List:            ep("list.php"),
		Columns:         transactionColumns(),
		KeyFields:       keyTransaction,
		Normalize:       transactionNormalize(),
		RequiredParams:  []string{"datefrom", "dateto"},
		DateFromParam:   "datefrom",
		DateToParam:     "dateto",
		MaxDateSpanDays: 31,
		PageSize:        10,
		SelectionLimit:  50,
		Actions: []action.Action{
			{Name: "approve", Label: "Approve", Endpoint: ep("approve.php"), RecordFields: keyTransaction},
			{Name: "fail", Label: "Fail", Endpoint: ep("fail.php"), RecordFields: keyTransaction, Destructive: true, ReasonParam: "notes"},
			{Name: "bulk-fail", Label: "Bulk fail", Endpoint: ep("bulk-fail.php"), RecordFields: keyTransaction, Destructive: true, Bulk: true, ReasonParam: "notes"},
			{Name: "reassign", Label: "Reassign", Endpoint: ep("reassign.php"), RecordFields: keyTransaction, RequiredParams: []string{"agent"}},
		},
	}
}

func depositQueueScreen() Definition {
	ep := func(path string) backend.Endpoint {
		return backend.Endpoint{Path: "deposit/" + path, Encrypted: true}
	}
	return Definition{
		Name:           "deposit-queue",
		Title:          "Deposit queue",
		Description:    "Pending deposits waiting for an agent",
		List:           ep("queue.php"),
		Columns:        transactionColumns(),
		KeyFields:      keyTransaction,
		Normalize:      transactionNormalize(),
		PageSize:       25,
		SelectionLimit: 50,
		Actions: []action.Action{
			{Name: "assign", Label: "Assign", Endpoint: ep("assign.php"), RecordFields: keyTransaction, Bulk: true, BulkField: "transactions", RequiredParams: []string{"agent"}},
		},
	}
}

func smsLogScreen() Definition {
	ep := func(path string) backend.Endpoint {
		return backend.Endpoint{Path: "sms/" + path, Encrypted: true}
	}
	keySMS := []string{"smsid"}
	return Definition{
		Name:        "sms-log",
		Title:       "SMS log",
		Description: "Bank SMS notifications and their matches",
		List:        ep("list.php"),
		Columns: []model.ColumnSpec{
			textColumn("smsid", "SMS", 8),
			textColumn("receivedate", "Received", 19),
			textColumn("phonenumber", "Phone", 12),
			textColumn("bankcode", "Bank", 6),
			amountColumn("amount", "Amount"),
			textColumn("transactionid", "Transaction", 12),
			textColumn("status", "Status", 8),
			textColumn("message", "Message", 30),
		},
		KeyFields:       keySMS,
		Normalize:       normalize.Config{NumericFields: []string{"amount"}},
		RequiredParams:  []string{"datefrom", "dateto"},
		DateFromParam:   "datefrom",
		DateToParam:     "dateto",
		MaxDateSpanDays: 7,
		PageSize:        10,
		Actions: []action.Action{
			{Name: "match", Label: "Match", Endpoint: ep("match.php"), RecordFields: keySMS, RequiredParams: []string{"transactionid"}},
			{Name: "expire", Label: "Expire", Endpoint: ep("expire.php"), RecordFields: keySMS, Destructive: true},
		},
	}
}

func mutationsScreen() Definition {
	return Definition{
		Name:        "mutations",
		Title:       "Mutations",
		Description: "Bank account mutation ledger",
		List:        backend.Endpoint{Path: "mutation/list.php"},
		Columns: []model.ColumnSpec{
			textColumn("mutationid", "Mutation", 8),
			textColumn("mutationdate", "Date", 19),
			textColumn("accountno", "Account", 10),
			textColumn("bankcode", "Bank", 6),
			typeColumn("transactiontype"),
			textColumn("description", "Description", 20),
			amountColumn("DB", "Debit"),
			amountColumn("CR", "Credit"),
			balanceColumn(),
		},
		KeyFields: []string{"accountno", "mutationid"},
		Normalize: normalize.Config{
			TypeField:     normalize.DefaultTypeField,
			DebitTypes:    DefaultDebitTypes,
			NumericFields: []string{"amount", "balance"},
		},
		RequiredParams:  []string{"accountno", "datefrom", "dateto"},
		DateFromParam:   "datefrom",
		DateToParam:     "dateto",
		MaxDateSpanDays: 31,
		PageSize:        20,
	}
}
