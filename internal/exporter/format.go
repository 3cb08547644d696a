package exporter

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	// Always format with exactly 2 decimal places for consistency
	// This ensures values like 13.4 appear as 13.40 in CSV
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatAmount formats a monetary amount with two decimal places.
func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
