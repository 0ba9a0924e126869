// Package format renders amounts and durations for reports.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/finaly55/opti-credit/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a euro amount with thousands separators (e.g., "-€1,234.56").
func Currency(amount float64) string {
	formatted := groupThousands(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-€" + formatted
	}
	return "€" + formatted
}

// NumericCurrency returns the amount without a currency symbol (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	formatted := groupThousands(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + formatted
	}
	return formatted
}

// Percent renders an annual rate such as 1.5 as "1.50%".
func Percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}

// Duration renders a month count as years and months (e.g., "3 years 9 months").
func Duration(months int) string {
	if months <= 0 {
		return "0 months"
	}
	years := months / constants.MonthsPerYear
	rest := months % constants.MonthsPerYear

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if rest > 0 {
		parts = append(parts, plural(rest, "month"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func groupThousands(value float64) string {
	return printer.Sprintf("%.2f", value)
}
