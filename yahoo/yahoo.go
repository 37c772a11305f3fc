// Package yahoo retrieves historical daily price series from the Yahoo
// Finance chart API.
package yahoo

import (
	"fmt"
	"net/url"
	"time"

	"github.com/fineval/fineval"
	"github.com/shopspring/decimal"
)

var chartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// chartResponse is the payload of the v8 chart endpoint.
//
//	{
//	  "chart": {
//	    "result": [ {
//	      "meta": { "regularMarketPrice": 5277.51, ... },
//	      "timestamp": [ 1704205800, ... ],
//	      "indicators": {
//	        "quote": [ { "open": [...], "close": [...], ... } ],
//	        "adjclose": [ { "adjclose": [...] } ]
//	      }
//	    } ],
//	    "error": null
//	  }
//	}
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches the daily price series of a symbol over the given
// inclusive date range. Each returned row carries the "open", "high", "low",
// "close" and "adjclose" fields; days where the exchange reported no close
// (nulls in the payload) are dropped.
func History(symbol string, from, to fineval.Date) ([]fineval.DailyPrice, error) {
	addr := fmt.Sprintf("%s%s?period1=%d&period2=%d&interval=1d",
		chartURL, url.PathEscape(symbol), from.Unix(), to.Add(1).Unix())

	var content chartResponse
	if err := jwget(newDailyCachingClient(), addr, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch history for %q: %w", symbol, err)
	}
	if e := content.Chart.Error; e != nil {
		return nil, fmt.Errorf("yahoo refused %q: %s: %s", symbol, e.Code, e.Description)
	}
	if len(content.Chart.Result) == 0 || len(content.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no data returned for %q", symbol)
	}

	result := content.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	var adjclose []*float64
	if len(result.Indicators.Adjclose) > 0 {
		adjclose = result.Indicators.Adjclose[0].Adjclose
	}

	series := make([]fineval.DailyPrice, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		day := time.Unix(ts, 0).UTC()
		row := fineval.DailyPrice{
			Date:   fineval.NewDate(day.Date()),
			Fields: make(map[string]any, 5),
		}
		put := func(field string, values []*float64) {
			if i < len(values) && values[i] != nil {
				row.Fields[field] = decimal.NewFromFloat(*values[i]).Round(6)
			}
		}
		put("open", quote.Open)
		put("high", quote.High)
		put("low", quote.Low)
		put("close", quote.Close)
		put("adjclose", adjclose)
		series = append(series, row)
	}
	return series, nil
}
