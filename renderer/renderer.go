// Package renderer formats fineval results as markdown reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/fineval/fineval"
)

// MonthlyPrices renders an end-of-month price series as a markdown table.
func MonthlyPrices(title, field string, prices []fineval.MonthlyPrice) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "## %s end-of-month prices (%s)\n\n", title, field)
	if len(prices) == 0 {
		fmt.Fprintf(b, "No trading data in the requested months.\n")
		return b.String()
	}
	fmt.Fprintf(b, "| Month | Date | Price |\n")
	fmt.Fprintf(b, "|:---|:---|---:|\n")
	for _, p := range prices {
		fmt.Fprintf(b, "| %s | %s | %s |\n", p.Month(), p.Date, p.Price)
	}
	return b.String()
}

// Holdings renders the holdings of a parsed statement as a markdown table,
// with a total row.
func Holdings(s *fineval.Statement) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "## Holdings as of %s\n\n", s.PeriodEnd)
	fmt.Fprintf(b, "| Symbol | Description | Quantity | Price | Balance |\n")
	fmt.Fprintf(b, "|:---|:---|---:|---:|---:|\n")
	for _, h := range s.Holdings {
		price := ""
		if !h.Price.IsZero() {
			price = h.Price.String()
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n", h.Symbol, h.Description, h.Quantity, price, h.Balance)
	}
	fmt.Fprintf(b, "| **Total** | | | | %s |\n", s.Total())
	return b.String()
}
