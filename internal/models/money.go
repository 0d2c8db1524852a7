package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount reports a price string that cannot be parsed.
var ErrInvalidAmount = errors.New("invalid money amount")

const koboPerNaira = 100

// Money is an exact amount in kobo (minor currency units). Amounts enter the
// system as integers at the catalog boundary and stay integers through every
// calculation; formatting to a display string happens only at the response
// layer. Derived figures (discount, tax) round half-up to the nearest kobo.
type Money struct {
	kobo int64
}

// NewMoneyFromKobo creates an amount from minor units.
func NewMoneyFromKobo(kobo int64) Money {
	return Money{kobo: kobo}
}

// NewMoneyFromNaira creates an amount from whole naira.
func NewMoneyFromNaira(naira int64) Money {
	return Money{kobo: naira * koboPerNaira}
}

// NewMoneyFromDecimal creates an amount from a naira decimal, rounding
// half-up to the nearest kobo.
func NewMoneyFromDecimal(naira decimal.Decimal) Money {
	return Money{kobo: naira.Shift(2).Round(0).IntPart()}
}

// ParseMoney parses a display price such as "₦50,000" or "50000.50" into an
// exact amount. Currency symbols and thousands separators are stripped before
// conversion; anything non-numeric is rejected rather than propagated.
func ParseMoney(raw string) (Money, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "₦", "")
	cleaned = strings.ReplaceAll(cleaned, "NGN", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if parsed.IsNegative() {
		return Money{}, fmt.Errorf("%w: negative %q", ErrInvalidAmount, raw)
	}
	return NewMoneyFromDecimal(parsed), nil
}

// Kobo returns the amount in minor units.
func (m Money) Kobo() int64 {
	return m.kobo
}

// Decimal returns the amount as a naira decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.kobo, -2)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{kobo: m.kobo + other.kobo}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{kobo: m.kobo - other.kobo}
}

// MulInt returns m multiplied by an integer quantity.
func (m Money) MulInt(quantity int) Money {
	return Money{kobo: m.kobo * int64(quantity)}
}

// MulRate applies a fractional rate (e.g. 0.075) and rounds half-up to the
// nearest kobo.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{kobo: decimal.New(m.kobo, 0).Mul(rate).Round(0).IntPart()}
}

// Cmp compares two amounts: -1 when m < other, 0 when equal, 1 when greater.
func (m Money) Cmp(other Money) int {
	switch {
	case m.kobo < other.kobo:
		return -1
	case m.kobo > other.kobo:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.kobo == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.kobo < 0
}

// Format renders the amount as a storefront display string, e.g. "₦107,500"
// or "₦1,250.50" when a kobo remainder exists.
func (m Money) Format() string {
	naira := m.kobo / koboPerNaira
	remainder := m.kobo % koboPerNaira
	if remainder < 0 {
		remainder = -remainder
	}
	grouped := groupThousands(naira)
	if remainder == 0 {
		return "₦" + grouped
	}
	return fmt.Sprintf("₦%s.%02d", grouped, remainder)
}

// MarshalJSON emits the amount as integer kobo.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.kobo)
}

// UnmarshalJSON accepts integer kobo or a formatted price string.
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseMoney(s)
		if err != nil {
			return err
		}
		m.kobo = parsed.kobo
		return nil
	}
	var kobo int64
	if err := json.Unmarshal(b, &kobo); err != nil {
		return err
	}
	m.kobo = kobo
	return nil
}

// Value stores the amount as integer kobo.
func (m Money) Value() (driver.Value, error) {
	return m.kobo, nil
}

// Scan reads the amount back from integer kobo.
func (m *Money) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		m.kobo = 0
		return nil
	case int64:
		m.kobo = v
		return nil
	case int:
		m.kobo = int64(v)
		return nil
	case []byte:
		parsed, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("%w: scan %q", ErrInvalidAmount, string(v))
		}
		m.kobo = parsed.IntPart()
		return nil
	default:
		return fmt.Errorf("%w: scan %T", ErrInvalidAmount, value)
	}
}

// String returns the display form.
func (m Money) String() string {
	return m.Format()
}

func groupThousands(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	digits := fmt.Sprintf("%d", value)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
