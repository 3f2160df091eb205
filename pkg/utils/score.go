package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundScore rounds a score to one decimal place, ties away from zero.
// Scores are never negative, so this matches the club's round-half-up rule.
func RoundScore(score decimal.Decimal) decimal.Decimal {
	return score.Round(1)
}

// FormatTime renders a duration in seconds as mm:ss.
func FormatTime(timeS int) string {
	return fmt.Sprintf("%02d:%02d", timeS/60, timeS%60)
}

// CapitalizeWords uppercases the first letter of each space-separated word.
func CapitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// FancyName turns an internal snake_case name into a display name.
func FancyName(name string) string {
	return CapitalizeWords(strings.ReplaceAll(name, "_", " "))
}
