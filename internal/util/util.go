package util

import (
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"
)

// RefCodeLength is the length of an order reference code.
const RefCodeLength = 20

const refCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewRefCode returns a random reference code of lowercase letters and digits.
// Uniqueness is not guaranteed.
func NewRefCode() string {
	var b strings.Builder
	b.Grow(RefCodeLength)

	for range RefCodeLength {
		b.WriteByte(refCodeAlphabet[rand.IntN(len(refCodeAlphabet))])
	}

	return b.String()
}

// FormatPrice renders an amount with two decimals.
func FormatPrice(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatTotal renders an integer total, keeping the sign for negative values.
func FormatTotal(total int64) string {
	return decimal.NewFromInt(total).String()
}
