package fineval

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// This file parses the markdown rendition of a brokerage monthly statement
// (as produced by a document converter, see the docconvert subpackage) into
// structured holding records.

// Holding is one row of a statement's holdings table.
type Holding struct {
	Symbol      string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal // zero when the table carries no price column
	Balance     Money
}

// Statement is the structured content extracted from one monthly statement.
type Statement struct {
	PeriodEnd Date // last day of the statement period
	Holdings  []Holding
}

// Total returns the sum of all holding balances.
func (s *Statement) Total() Money {
	var total Money
	for _, h := range s.Holdings {
		total = total.Add(h.Balance)
	}
	return total
}

// statementCurrency is the currency of the monetary columns. Statements do
// not label their amounts; USD is what the supported brokers emit.
const statementCurrency = "USD"

// Fixed anchors used to locate the holdings table and the statement period
// within the converted document.
var (
	symbolHeaderRE   = regexp.MustCompile(`(?i)^(symbol|ticker)\b`)
	nameHeaderRE     = regexp.MustCompile(`(?i)^(name|description|fund|investment)\b`)
	quantityHeaderRE = regexp.MustCompile(`(?i)^(quantity|shares)\b`)
	priceHeaderRE    = regexp.MustCompile(`(?i)\b(price)\b`)
	balanceHeaderRE  = regexp.MustCompile(`(?i)\b(balance|value|total)\b`)

	longDateRE = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),\s+(\d{4})`)
)

// ParseStatement parses the markdown rendition of a monthly statement.
// It locates the holdings table by its header anchors (a symbol column, a
// quantity column, and a balance column) and the statement period end date
// by the latest long-form date appearing in the document.
func ParseStatement(source []byte) (*Statement, error) {
	var stmt Statement

	var err error
	stmt.PeriodEnd, err = parsePeriodEnd(source)
	if err != nil {
		return nil, err
	}

	for _, table := range markdownTables(source) {
		holdings, ok := parseHoldingsTable(table)
		if !ok {
			continue
		}
		stmt.Holdings = holdings
		return &stmt, nil
	}
	return nil, fmt.Errorf("no holdings table found in statement")
}

// parsePeriodEnd scans the document for long-form dates ("June 30, 2024") and
// keeps the latest one: statements state their period as a start/end date
// pair, and the end date is also the one repeated in page headers.
func parsePeriodEnd(source []byte) (Date, error) {
	matches := longDateRE.FindAllString(string(source), -1)
	if len(matches) == 0 {
		return Date{}, fmt.Errorf("no statement period date found")
	}
	var end Date
	for _, m := range matches {
		on, err := time.Parse("January 2, 2006", m)
		if err != nil {
			continue
		}
		if d := NewDate(on.Date()); d.After(end) {
			end = d
		}
	}
	if end.IsZero() {
		return Date{}, fmt.Errorf("no statement period date found")
	}
	return end, nil
}

// markdownTables extracts every table of the markdown source as a slice of
// rows, header row first.
func markdownTables(source []byte) [][][]string {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(source))

	var tables [][][]string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*east.Table); !ok {
			return ast.WalkContinue, nil
		}
		var rows [][]string
		for row := n.FirstChild(); row != nil; row = row.NextSibling() {
			// children are one TableHeader followed by TableRows
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, nodeText(cell, source))
			}
			rows = append(rows, cells)
		}
		tables = append(tables, rows)
		return ast.WalkSkipChildren, nil
	})
	return tables
}

// nodeText collects the raw text content of a node.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// parseHoldingsTable interprets a table as a holdings table. It returns
// false if the header does not carry the expected anchors.
func parseHoldingsTable(rows [][]string) ([]Holding, bool) {
	if len(rows) < 2 {
		return nil, false
	}
	header := rows[0]
	symbol, name, quantity, price, balance := -1, -1, -1, -1, -1
	for i, cell := range header {
		switch {
		case symbol < 0 && symbolHeaderRE.MatchString(cell):
			symbol = i
		case name < 0 && nameHeaderRE.MatchString(cell):
			name = i
		case quantity < 0 && quantityHeaderRE.MatchString(cell):
			quantity = i
		case price < 0 && priceHeaderRE.MatchString(cell):
			price = i
		case balance < 0 && balanceHeaderRE.MatchString(cell):
			balance = i
		}
	}
	if symbol < 0 || quantity < 0 || balance < 0 {
		return nil, false
	}

	var holdings []Holding
	for _, row := range rows[1:] {
		if symbol >= len(row) || quantity >= len(row) || balance >= len(row) {
			continue
		}
		if strings.TrimSpace(row[symbol]) == "" {
			continue // separator or total row
		}
		q, err := parseAmount(row[quantity])
		if err != nil {
			continue // footer rows ("Total", disclaimers) are not holdings
		}
		b, err := parseAmount(row[balance])
		if err != nil {
			continue
		}
		h := Holding{
			Symbol:   strings.TrimSpace(row[symbol]),
			Quantity: q,
			Balance:  M(b, statementCurrency),
		}
		if name >= 0 && name < len(row) {
			h.Description = strings.TrimSpace(row[name])
		}
		if price >= 0 && price < len(row) {
			if p, err := parseAmount(row[price]); err == nil {
				h.Price = p
			}
		}
		holdings = append(holdings, h)
	}
	if len(holdings) == 0 {
		return nil, false
	}
	return holdings, true
}

// parseAmount parses a statement number, tolerating currency symbols and
// thousands separators ("$1,234.56").
func parseAmount(cell string) (decimal.Decimal, error) {
	s := strings.TrimSpace(cell)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}

// Span is an inclusive line-number range: Start is the first line of a
// table, End the last one.
type Span struct{ Start, End int }

// TableSpans locates, in a plain-text statement rendition, every run of
// consecutive lines forming a table whose header matches the given pattern.
// A table extends from its header line down to the last following line that
// shares the header's column delimiter.
func TableSpans(lines []string, header *regexp.Regexp) []Span {
	var spans []Span
	for i := 0; i < len(lines); i++ {
		if !header.MatchString(lines[i]) {
			continue
		}
		delimited := strings.Contains(lines[i], "|")
		end := i
		for j := i + 1; j < len(lines); j++ {
			line := strings.TrimSpace(lines[j])
			if line == "" {
				break
			}
			if delimited != strings.Contains(line, "|") {
				break
			}
			end = j
		}
		spans = append(spans, Span{Start: i, End: end})
		i = end
	}
	return spans
}
