package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EntityKey identifies a customer or creditor by (code, name).
type EntityKey struct {
	Code string
	Name string
}

// String renders the key as "CODE NAME", or whichever part is present.
func (k EntityKey) String() string {
	return strings.TrimSpace(k.Code + " " + k.Name)
}

// EntityBalance is one customer/creditor row from an aging extract.
type EntityBalance struct {
	Key     EntityKey
	State   string            // Bill-To-State where the extract carries one
	Balance decimal.Decimal   // Balance/G.Total
	Buckets []decimal.Decimal // in aging.Spec order
	Tail    decimal.Decimal   // sum of the buckets a risk rule looks at
}

// Active reports whether the entity still owes (or is owed) something.
func (e EntityBalance) Active() bool {
	return e.Balance.IsPositive()
}
