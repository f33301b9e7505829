package types

import "github.com/shopspring/decimal"

func init() {
	// Amounts serialize as plain JSON numbers on the wire, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
