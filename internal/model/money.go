package model

import (
    "math"
    "strconv"
)

// Money is a monetary amount held as integer cents.  All price arithmetic
// in the storefront goes through this type so that summing many line items
// never drifts the way binary floating point does.  The upstream catalog
// publishes prices as JSON numbers; MoneyFromFloat converts them once at
// the boundary.
type Money int64

// MoneyFromFloat rounds a decimal amount (e.g. 49.90) to the nearest cent.
func MoneyFromFloat(v float64) Money {
    return Money(math.Round(v * 100))
}

// Cents returns the raw amount in cents.
func (m Money) Cents() int64 { return int64(m) }

// Times multiplies the amount by a quantity.
func (m Money) Times(n int) Money { return m * Money(n) }

// String formats the amount with two fraction digits, e.g. "150.00".
func (m Money) String() string {
    neg := m < 0
    v := int64(m)
    if neg {
        v = -v
    }
    frac := v % 100
    out := strconv.FormatInt(v/100, 10) + "."
    if frac < 10 {
        out += "0"
    }
    out += strconv.FormatInt(frac, 10)
    if neg {
        return "-" + out
    }
    return out
}
