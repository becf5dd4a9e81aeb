package domain

import (
	"fmt"
	"strings"
)

// Money is a structured amount in minor units plus an ISO-ish currency
// code. Catalog prices arrive as display strings ("BDT 1,234.50"); they
// are parsed once at the API boundary and formatted only at render time.
type Money struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

// ParseMoney extracts the currency token and the numeric amount from a
// display price. The currency is the leading run of letters (if any);
// commas are treated as thousands separators. Returns false when no
// digits are present.
func ParseMoney(s string) (Money, bool) {
	s = strings.TrimSpace(s)

	i := 0
	for i < len(s) && (isLetter(s[i]) || s[i] == ' ') {
		i++
	}
	currency := strings.TrimSpace(s[:i])
	rest := s[i:]

	negative := false
	var units, frac int64
	fracDigits := 0
	seenDigit := false
	inFrac := false
	for j := 0; j < len(rest); j++ {
		c := rest[j]
		switch {
		case c == '-' && !seenDigit:
			negative = true
		case c == ',':
			// thousands separator
		case c == '.':
			if inFrac {
				return Money{}, false
			}
			inFrac = true
		case c >= '0' && c <= '9':
			seenDigit = true
			if inFrac {
				if fracDigits < 2 {
					frac = frac*10 + int64(c-'0')
					fracDigits++
				}
			} else {
				units = units*10 + int64(c-'0')
			}
		default:
			if seenDigit {
				j = len(rest) // trailing junk ends the number
			}
		}
	}
	if !seenDigit {
		return Money{}, false
	}
	for fracDigits < 2 {
		frac *= 10
		fracDigits++
	}
	cents := units*100 + frac
	if negative {
		cents = -cents
	}
	return Money{Cents: cents, Currency: currency}, true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (m Money) IsZero() bool {
	return m.Cents == 0 && m.Currency == ""
}

// Mul scales the amount by an item quantity.
func (m Money) Mul(quantity int) Money {
	return Money{Cents: m.Cents * int64(quantity), Currency: m.Currency}
}

// Add sums two amounts. The receiver's currency wins when both are set;
// an empty receiver adopts the other side's currency.
func (m Money) Add(o Money) Money {
	cur := m.Currency
	if cur == "" {
		cur = o.Currency
	}
	return Money{Cents: m.Cents + o.Cents, Currency: cur}
}

// String renders the amount for display, e.g. "BDT 1234.50".
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	if m.Currency == "" {
		return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
	}
	return fmt.Sprintf("%s %s%d.%02d", m.Currency, sign, cents/100, cents%100)
}
