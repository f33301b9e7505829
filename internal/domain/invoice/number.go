package invoice

import (
	"fmt"
	"strconv"
	"strings"

	ierr "github.com/facturio/facturio/internal/errors"
)

const (
	// NumberPrefix prefixes every invoice number
	NumberPrefix = "FAC-"
	// numberDigits is the zero-padded width of the sequence suffix
	numberDigits = 6
)

// FormatNumber renders a sequence value as an invoice number, e.g. FAC-000042
func FormatNumber(seq int64) string {
	return fmt.Sprintf("%s%0*d", NumberPrefix, numberDigits, seq)
}

// ParseNumber extracts the sequence value from an invoice number
func ParseNumber(number string) (int64, error) {
	suffix, ok := strings.CutPrefix(number, NumberPrefix)
	if !ok {
		return 0, ierr.NewError("invalid invoice number prefix").
			WithHintf("Numéro de facture invalide: %s", number).
			Mark(ierr.ErrValidation)
	}
	seq, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHintf("Numéro de facture invalide: %s", number).
			Mark(ierr.ErrValidation)
	}
	return seq, nil
}

// NextNumber returns the number to assign after the latest stored one. It
// falls back to the first number of the sequence when no invoice exists yet
// or the stored number does not parse.
//
// The latest-number read and the subsequent write are not serialized: two
// concurrent creations can race to the same number. Known limitation of the
// numbering scheme, kept as-is; closing it requires an atomic counter item.
func NextNumber(last *string) string {
	if last == nil {
		return FormatNumber(1)
	}
	seq, err := ParseNumber(*last)
	if err != nil {
		return FormatNumber(1)
	}
	return FormatNumber(seq + 1)
}
