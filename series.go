package fineval

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// DailyPrice is one observation of a security on a trading day: a date and a
// set of named numeric fields (typically "open", "close", ...). Which field
// is "the price" is the caller's choice; the extractor is agnostic to its
// semantic meaning.
//
// Field values may be decimal.Decimal, json.Number or a plain Go numeric
// type. Anything else is reported as a type mismatch when the field is read.
type DailyPrice struct {
	Date   Date
	Fields map[string]any
}

// Decimal returns the named field as a decimal.
// It returns a [MissingFieldError] if the field is absent, and a
// [TypeMismatchError] if it is present but not numeric.
func (p DailyPrice) Decimal(field string) (decimal.Decimal, error) {
	v, ok := p.Fields[field]
	if !ok {
		return decimal.Decimal{}, &MissingFieldError{Field: field, On: p.Date}
	}
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Decimal{}, &TypeMismatchError{Field: field, On: p.Date, Value: v}
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	default:
		return decimal.Decimal{}, &TypeMismatchError{Field: field, On: p.Date, Value: v}
	}
}

// The JSON form of a daily row is a single flat object, one "date" attribute
// plus one attribute per field:
//
//	{"date":"2024-01-31","open":123.4,"close":125.1}

const attrDate = "date"

func (p DailyPrice) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(p.Fields)+1)
	for k, v := range p.Fields {
		// decimals marshal as quoted strings by default, force plain numbers.
		if d, ok := v.(decimal.Decimal); ok {
			obj[k] = json.Number(d.String())
		} else {
			obj[k] = v
		}
	}
	obj[attrDate] = p.Date.String()
	return json.Marshal(obj)
}

func (p *DailyPrice) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber() // keep full precision, fields become json.Number
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return err
	}
	raw, ok := obj[attrDate].(string)
	if !ok {
		return fmt.Errorf("daily price row %s has no %q attribute", string(data), attrDate)
	}
	day, err := ParseDate(raw)
	if err != nil {
		return err
	}
	delete(obj, attrDate)
	p.Date, p.Fields = day, obj
	return nil
}

var _ json.Marshaler = (*DailyPrice)(nil)
var _ json.Unmarshaler = (*DailyPrice)(nil)

// EncodeSeries writes a daily series as JSONL, one row per line, in a way
// that is human-readable and git-friendly.
func EncodeSeries(w io.Writer, series []DailyPrice) error {
	for _, row := range series {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("cannot encode row on %s: %w", row.Date, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSeries reads a JSONL daily series. Blank lines are skipped.
func DecodeSeries(r io.Reader) ([]DailyPrice, error) {
	var series []DailyPrice
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var row DailyPrice
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("format error on line %q: %w", string(line), err)
		}
		series = append(series, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return series, nil
}
