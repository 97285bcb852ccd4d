// Package parser extracts an amount and a description from free-form
// expense messages like "50 lunch" or "12.50 taxi to airport".
package parser

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidExpense is returned for any text that does not match the
// "<amount> <description>" grammar. Callers turn it into a usage hint.
var ErrInvalidExpense = errors.New("invalid expense format")

// Entry is a successfully parsed expense candidate.
type Entry struct {
	Amount      float64
	Description string
}

// Grammar: a positive number with an optional 1-2 digit fraction, then
// whitespace, then the description. Command text ("/...") never reaches
// this package; the bot routes it beforehand.
var expenseRe = regexp.MustCompile(`^(\d+(?:\.\d{1,2})?)\s+(.+)$`)

// Parse validates text against the expense grammar. It has no side effects
// and the only error it returns is ErrInvalidExpense.
func Parse(text string) (Entry, error) {
	m := expenseRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Entry{}, ErrInvalidExpense
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil || amount <= 0 {
		return Entry{}, ErrInvalidExpense
	}

	description := strings.TrimSpace(m[2])
	if description == "" {
		return Entry{}, ErrInvalidExpense
	}

	// Two-decimal precision, half-up.
	amount = math.Round(amount*100) / 100

	return Entry{Amount: amount, Description: description}, nil
}
