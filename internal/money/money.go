// Package money holds the fixed-point currency representation used for
// product prices. Amounts are stored as decimal strings (a decimal(10,2)
// column) and never pass through binary floating point on the way to or
// from the database.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCorrupt marks a stored value that cannot be decoded back into an
// amount. It is fatal for the single record being read, not for the query.
var ErrCorrupt = errors.New("money: corrupt stored amount")

type Amount struct {
	dec decimal.Decimal
}

func New(d decimal.Decimal) Amount {
	return Amount{dec: d}
}

func Zero() Amount {
	return Amount{dec: decimal.Zero}
}

// Parse reads a decimal string such as "19.99".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return Amount{dec: d}, nil
}

func (a Amount) Decimal() decimal.Decimal { return a.dec }

func (a Amount) IsNegative() bool { return a.dec.IsNegative() }

func (a Amount) Equal(b Amount) bool { return a.dec.Equal(b.dec) }

// String renders the amount with exactly two fractional digits.
func (a Amount) String() string { return a.dec.StringFixed(2) }

// Value encodes the amount for storage as a decimal string.
func (a Amount) Value() (driver.Value, error) {
	return a.dec.StringFixed(2), nil
}

// Scan decodes a stored amount. Malformed representations fail with
// ErrCorrupt so callers can surface them as data corruption for the
// affected record.
func (a *Amount) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	a.dec = d
	return nil
}

// MarshalJSON renders the amount as a bare JSON number, matching the API
// the service has always exposed.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.dec.StringFixed(2)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("money: invalid amount %s: %w", data, err)
	}
	a.dec = d
	return nil
}
