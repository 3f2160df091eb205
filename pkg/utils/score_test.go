package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundScore(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fraction", "3", "3"},
		{"trailing zero after rounding", "3.04", "3"},
		{"already one decimal", "2.5", "2.5"},
		{"half rounds up", "2.25", "2.3"},
		{"below half rounds down", "2.24", "2.2"},
		{"repeating average", "1.6666666666666667", "1.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decimal.RequireFromString(tt.in)
			assert.Equal(t, tt.want, RoundScore(in).String())
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00", FormatTime(0))
	assert.Equal(t, "00:59", FormatTime(59))
	assert.Equal(t, "01:00", FormatTime(60))
	assert.Equal(t, "62:03", FormatTime(3723))
}

func TestFancyName(t *testing.T) {
	assert.Equal(t, "2025 Spring Series", FancyName("2025_spring_series"))
	assert.Equal(t, "2025 Season Total", FancyName("2025_season_total"))
}
