package fineval

import (
	"slices"

	"github.com/shopspring/decimal"
)

// PriorMonth is the sentinel end bound meaning "the calendar month
// immediately preceding the reference date's month".
const PriorMonth = "prior"

// MonthlyPrice is one end-of-month observation: the last trading day
// observed in the input series for a given month, and the price on that day.
type MonthlyPrice struct {
	Date  Date
	Price decimal.Decimal
}

// Month returns the month key of the observation.
func (p MonthlyPrice) Month() Month { return MonthOf(p.Date) }

// EndOfMonthPrices extracts an end-of-month price series from a daily one.
//
// "End of month" means the last trading day actually present in the input
// for that month, not the true calendar month-end: if the series has gaps,
// the last day of available data wins. The input needs no particular order.
// startMonth and endMonth are inclusive "YYYY-MM" bounds; endMonth may also
// be [PriorMonth], which resolves against the current date. Use
// [EndOfMonthPricesAsOf] to pin the reference date instead.
//
// An empty series, or bounds that select no month, yield an empty result,
// not an error.
func EndOfMonthPrices(series []DailyPrice, startMonth, endMonth, field string) ([]MonthlyPrice, error) {
	return EndOfMonthPricesAsOf(series, startMonth, endMonth, field, Today())
}

// EndOfMonthPricesAsOf is [EndOfMonthPrices] with an explicit reference date
// for resolving the [PriorMonth] sentinel. It is a pure function of its
// arguments.
func EndOfMonthPricesAsOf(series []DailyPrice, startMonth, endMonth, field string, asOf Date) ([]MonthlyPrice, error) {
	start, err := ParseMonth(startMonth)
	if err != nil {
		return nil, &InvalidRangeError{Value: startMonth}
	}
	var end Month
	if endMonth == PriorMonth {
		end = MonthOf(asOf).Add(-1)
	} else if end, err = ParseMonth(endMonth); err != nil {
		return nil, &InvalidRangeError{Value: endMonth}
	}

	// One pass: keep, per month, the row with the greatest day-of-month.
	// Strict comparison makes the tie-break deterministic: on duplicate
	// (month, day) pairs the first encountered row wins.
	type eom struct {
		day int
		row MonthlyPrice
	}
	last := make(map[Month]eom)
	for _, r := range series {
		price, err := r.Decimal(field)
		if err != nil {
			// Fail fast on the offending row, even when its month falls
			// outside the requested bounds.
			return nil, err
		}
		m := MonthOf(r.Date)
		if best, ok := last[m]; !ok || r.Date.Day() > best.day {
			last[m] = eom{day: r.Date.Day(), row: MonthlyPrice{Date: r.Date, Price: price}}
		}
	}

	result := make([]MonthlyPrice, 0, len(last))
	for m, e := range last {
		if m.Before(start) || m.After(end) {
			continue
		}
		result = append(result, e.row)
	}
	slices.SortFunc(result, func(a, b MonthlyPrice) int { return a.Date.Compare(b.Date) })
	return result, nil
}
