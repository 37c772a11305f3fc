package fineval

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// row builds a daily observation with a single "close" field.
func row(on string, close float64) DailyPrice {
	return DailyPrice{
		Date:   MustDate(on),
		Fields: map[string]any{"close": decimal.NewFromFloat(close)},
	}
}

func TestEndOfMonthPrices_MaxDaySelection(t *testing.T) {
	// days 15, 3 and 28 present: the max day wins, regardless of order.
	series := []DailyPrice{
		row("2024-03-15", 101),
		row("2024-03-03", 99),
		row("2024-03-28", 103),
	}
	got, err := EndOfMonthPricesAsOf(series, "2024-03", "2024-03", "close", MustDate("2024-06-01"))
	if err != nil {
		t.Fatalf("EndOfMonthPricesAsOf() unexpected error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("EndOfMonthPricesAsOf() returned %d rows, want 1", len(got))
	}
	if got[0].Date != MustDate("2024-03-28") {
		t.Errorf("EndOfMonthPricesAsOf() date = %s, want 2024-03-28", got[0].Date)
	}
	if !got[0].Price.Equal(decimal.NewFromInt(103)) {
		t.Errorf("EndOfMonthPricesAsOf() price = %s, want 103", got[0].Price)
	}
}

func TestEndOfMonthPrices_UnsortedInput(t *testing.T) {
	sorted := []DailyPrice{
		row("2024-01-30", 1), row("2024-01-31", 2),
		row("2024-02-01", 3), row("2024-02-29", 4),
	}
	shuffled := []DailyPrice{sorted[3], sorted[0], sorted[2], sorted[1]}

	asOf := MustDate("2024-06-01")
	a, err := EndOfMonthPricesAsOf(sorted, "2024-01", "2024-02", "close", asOf)
	if err != nil {
		t.Fatalf("unexpected error = %v", err)
	}
	b, err := EndOfMonthPricesAsOf(shuffled, "2024-01", "2024-02", "close", asOf)
	if err != nil {
		t.Fatalf("unexpected error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("shuffling the input changed the output:\n%v\n%v", a, b)
	}
}

func TestEndOfMonthPrices_Idempotent(t *testing.T) {
	series := []DailyPrice{row("2024-01-31", 1), row("2024-02-29", 2)}
	asOf := MustDate("2024-06-01")
	a, _ := EndOfMonthPricesAsOf(series, "2024-01", "2024-02", "close", asOf)
	b, _ := EndOfMonthPricesAsOf(series, "2024-01", "2024-02", "close", asOf)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("two identical calls gave different outputs:\n%v\n%v", a, b)
	}
}

func TestEndOfMonthPrices_EmptySeries(t *testing.T) {
	got, err := EndOfMonthPricesAsOf(nil, "2024-01", "2024-12", "close", MustDate("2025-06-01"))
	if err != nil {
		t.Fatalf("empty series must not fail, got error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty series returned %d rows, want 0", len(got))
	}
}

func TestEndOfMonthPrices_StartAfterEnd(t *testing.T) {
	series := []DailyPrice{row("2024-03-28", 1)}
	got, err := EndOfMonthPricesAsOf(series, "2024-05", "2024-01", "close", MustDate("2024-06-01"))
	if err != nil {
		t.Fatalf("inverted range must not fail, got error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("inverted range returned %d rows, want 0", len(got))
	}
}

func TestEndOfMonthPrices_RangeContainment(t *testing.T) {
	series := []DailyPrice{
		row("2023-11-30", 1),
		row("2023-12-29", 2),
		row("2024-01-31", 3),
		row("2024-02-29", 4),
	}
	start, end := "2023-12", "2024-01"
	got, err := EndOfMonthPricesAsOf(series, start, end, "close", MustDate("2024-06-01"))
	if err != nil {
		t.Fatalf("unexpected error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	for _, p := range got {
		if key := p.Month().String(); key < start || key > end {
			t.Errorf("row on %s is outside [%s, %s]", p.Date, start, end)
		}
	}
	// chronological order
	if got[0].Date.After(got[1].Date) {
		t.Errorf("output is not chronological: %s before %s", got[0].Date, got[1].Date)
	}
}

// Resolving "prior" in January must land on December of the previous year,
// not on an invalid month zero.
func TestEndOfMonthPrices_PriorYearRollover(t *testing.T) {
	series := []DailyPrice{
		row("2024-11-29", 1),
		row("2024-12-31", 2),
		row("2025-01-15", 3),
	}
	got, err := EndOfMonthPricesAsOf(series, "2024-11", PriorMonth, "close", MustDate("2025-01-20"))
	if err != nil {
		t.Fatalf("unexpected error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2 (2024-11 and 2024-12)", len(got))
	}
	if last := got[len(got)-1]; last.Month() != NewMonth(2024, time.December) {
		t.Errorf("last month = %s, want 2024-12", last.Month())
	}
}

func TestEndOfMonthPrices_MissingField(t *testing.T) {
	series := []DailyPrice{
		row("2024-03-15", 100),
		{Date: MustDate("2024-03-18"), Fields: map[string]any{"open": decimal.NewFromInt(99)}},
	}
	_, err := EndOfMonthPricesAsOf(series, "2024-03", "2024-03", "close", MustDate("2024-06-01"))
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want a *MissingFieldError", err)
	}
	if missing.On != MustDate("2024-03-18") || missing.Field != "close" {
		t.Errorf("MissingFieldError = %+v, want close on 2024-03-18", missing)
	}
}

func TestEndOfMonthPrices_TypeMismatch(t *testing.T) {
	series := []DailyPrice{
		{Date: MustDate("2024-03-15"), Fields: map[string]any{"close": "n/a"}},
	}
	_, err := EndOfMonthPricesAsOf(series, "2024-03", "2024-03", "close", MustDate("2024-06-01"))
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want a *TypeMismatchError", err)
	}
}

func TestEndOfMonthPrices_InvalidRange(t *testing.T) {
	series := []DailyPrice{row("2024-03-28", 1)}
	asOf := MustDate("2024-06-01")
	for _, bounds := range [][2]string{
		{"2024-3", "2024-04"},  // start not zero-padded
		{"2024-03", "04-2024"}, // end malformed
		{"2024-03", "later"},   // end not a month and not the sentinel
	} {
		_, err := EndOfMonthPricesAsOf(series, bounds[0], bounds[1], "close", asOf)
		var invalid *InvalidRangeError
		if !errors.As(err, &invalid) {
			t.Errorf("bounds %v: error = %v, want a *InvalidRangeError", bounds, err)
		}
	}
}

// Duplicate (month, day) rows violate the input invariant; the first
// encountered row wins.
func TestEndOfMonthPrices_DuplicateMaxDayKeepsFirst(t *testing.T) {
	series := []DailyPrice{
		row("2024-03-28", 103),
		row("2024-03-28", 999),
	}
	got, err := EndOfMonthPricesAsOf(series, "2024-03", "2024-03", "close", MustDate("2024-06-01"))
	if err != nil {
		t.Fatalf("unexpected error = %v", err)
	}
	if len(got) != 1 || !got[0].Price.Equal(decimal.NewFromInt(103)) {
		t.Errorf("got %v, want the first duplicate (price 103)", got)
	}
}

// January 2019 business days, price equal to the day-of-month: the output is
// exactly the last business day of the month.
func TestEndOfMonthPrices_BusinessDaysMonth(t *testing.T) {
	var series []DailyPrice
	for d := NewDate(2019, time.January, 2); d.Month() == time.January; d = d.Add(1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		series = append(series, row(d.String(), float64(d.Day())))
	}
	got, err := EndOfMonthPricesAsOf(series, "2019-01", "2019-01", "close", MustDate("2019-03-01"))
	if err != nil {
		t.Fatalf("unexpected error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	// 2019-01-31 is a Thursday.
	if got[0].Date != MustDate("2019-01-31") {
		t.Errorf("date = %s, want 2019-01-31", got[0].Date)
	}
	if !got[0].Price.Equal(decimal.NewFromInt(31)) {
		t.Errorf("price = %s, want 31", got[0].Price)
	}
}
