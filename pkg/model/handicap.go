package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// HandicapPedigree marks how trustworthy a published handicap value is.
// It only affects display formatting, never scoring.
type HandicapPedigree int

const (
	PedigreeStandard HandicapPedigree = iota
	PedigreeSuspect
	PedigreeHighlySuspect
)

var ErrEmptyHandicap = errors.New("empty handicap value")

// HandicapNumber is an exact Portsmouth-style handicap value (100 = scratch)
// together with its pedigree. The digits are kept as written in the table, so
// formatting a parsed value reproduces the cell exactly, trailing zeros
// included. Immutable once constructed.
type HandicapNumber struct {
	value    decimal.Decimal
	digits   string
	pedigree HandicapPedigree
}

func NewHandicapNumber(value decimal.Decimal, pedigree HandicapPedigree) (HandicapNumber, error) {
	if value.Sign() <= 0 {
		return HandicapNumber{}, fmt.Errorf("handicap value must be positive, got %s", value)
	}
	return HandicapNumber{value: value, digits: value.String(), pedigree: pedigree}, nil
}

// ParseHandicapNumber parses the bracket notation used in the Portsmouth
// tables: a plain number is standard, (number) is suspect and [number] is
// highly suspect. Formatting a parsed value reproduces the input exactly.
func ParseHandicapNumber(s string) (HandicapNumber, error) {
	if len(s) == 0 {
		return HandicapNumber{}, ErrEmptyHandicap
	}

	pedigree := PedigreeStandard
	switch s[0] {
	case '(':
		if !strings.HasSuffix(s, ")") {
			return HandicapNumber{}, fmt.Errorf("handicap %q: no matching closing parenthesis", s)
		}
		s = s[1 : len(s)-1]
		pedigree = PedigreeSuspect
	case '[':
		if !strings.HasSuffix(s, "]") {
			return HandicapNumber{}, fmt.Errorf("handicap %q: no matching closing bracket", s)
		}
		s = s[1 : len(s)-1]
		pedigree = PedigreeHighlySuspect
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return HandicapNumber{}, fmt.Errorf("handicap %q: %w", s, err)
	}
	h, err := NewHandicapNumber(value, pedigree)
	if err != nil {
		return HandicapNumber{}, err
	}
	h.digits = s
	return h, nil
}

// Value is the raw handicap value (100 = scratch).
func (h HandicapNumber) Value() decimal.Decimal { return h.value }

func (h HandicapNumber) Pedigree() HandicapPedigree { return h.pedigree }

// Number is the handicap as a multiplier, value / 100.
func (h HandicapNumber) Number() decimal.Decimal {
	return h.value.Div(decimal.NewFromInt(100))
}

// String renders the value in the same bracket notation accepted by
// ParseHandicapNumber, preserving the digits as written.
func (h HandicapNumber) String() string {
	return h.bracketed(h.digits)
}

// NumberString renders the handicap multiplier with the pedigree brackets.
func (h HandicapNumber) NumberString() string {
	return h.bracketed(h.Number().StringFixed(5))
}

func (h HandicapNumber) bracketed(val string) string {
	switch h.pedigree {
	case PedigreeSuspect:
		return "(" + val + ")"
	case PedigreeHighlySuspect:
		return "[" + val + "]"
	default:
		return val
	}
}
