package exporter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero value", input: 0.0, expected: "0.00"},
		{name: "one decimal place", input: 13.4, expected: "13.40"},
		{name: "rounds to cents", input: 2.346, expected: "2.35"},
		{name: "negative", input: -1.5, expected: "-1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFloat(tt.input))
		})
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", formatInt(0))
	assert.Equal(t, "42", formatInt(42))
	assert.Equal(t, "-3", formatInt(-3))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "whole number", input: "1500", expected: "1500.00"},
		{name: "one decimal place", input: "99.5", expected: "99.50"},
		{name: "truncates to cents", input: "10.999", expected: "11.00"},
		{name: "zero", input: "0", expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, formatAmount(d))
		})
	}
}
