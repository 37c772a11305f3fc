// Package fineval extracts structured holdings data from brokerage monthly
// statements and aligns it with daily security price series to compute
// end-of-month valuations.
//
// The core of the package is [EndOfMonthPrices]: given a daily price series
// over an arbitrarily irregular trading calendar, it identifies the last
// trading day observed in each calendar month and returns a compact monthly
// series filtered to a requested month range.
//
// Statements are parsed from a markdown rendition produced by an external
// document converter (see the docconvert subpackage); daily price series come
// from an external market-data provider (see the yahoo subpackage) or from a
// JSONL file.
package fineval
