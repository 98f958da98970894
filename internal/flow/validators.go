package flow

import (
	"errors"
	"strconv"
	"strings"
)

// NonEmpty rejects blank input with the given re-prompt.
func NonEmpty(reprompt string) func(string) error {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errors.New(reprompt)
		}
		return nil
	}
}

// PositiveAmount accepts decimal input a with 0 < a <= ceiling. Text that
// does not parse and values out of range each get their own re-prompt, so
// the user learns what to fix.
func PositiveAmount(ceiling float64, nonNumeric, outOfRange string) func(string) error {
	return func(input string) error {
		amount, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil {
			return errors.New(nonNumeric)
		}
		// ParseFloat also accepts "NaN" and "Inf". NaN fails every
		// comparison, so the accepting form rejects it as out of range.
		if !(amount > 0 && amount <= ceiling) {
			return errors.New(outOfRange)
		}
		return nil
	}
}
