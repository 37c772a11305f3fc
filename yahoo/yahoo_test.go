package yahoo

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fineval/fineval"
	"github.com/shopspring/decimal"
)

// chartFixture is a trimmed v8 chart payload: three trading days, the middle
// one a holiday (null close).
const chartFixture = `{
  "chart": {
    "result": [
      {
        "meta": {"symbol": "^SPX", "regularMarketPrice": 5277.51},
        "timestamp": [1706628600, 1706715000, 1706801400],
        "indicators": {
          "quote": [
            {
              "open": [485.4, null, 489.2],
              "high": [486.0, null, 490.0],
              "low": [480.1, null, 484.7],
              "close": [482.88, null, 489.96]
            }
          ],
          "adjclose": [{"adjclose": [482.88, null, 489.96]}]
        }
      }
    ],
    "error": null
  }
}`

func fixtureServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	prev := chartURL
	chartURL = srv.URL + "/v8/finance/chart/"
	t.Cleanup(func() { chartURL = prev })
	return srv
}

func TestHistory(t *testing.T) {
	fixtureServer(t, chartFixture)

	from, to := fineval.MustDate("2024-01-30"), fineval.MustDate("2024-02-01")
	series, err := History("^SPX", from, to)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("History() returned %d rows, want 2 (null close dropped)", len(series))
	}
	if series[0].Date != fineval.MustDate("2024-01-30") {
		t.Errorf("row 0 date = %s, want 2024-01-30", series[0].Date)
	}
	closePrice, err := series[0].Decimal("close")
	if err != nil {
		t.Fatalf("Decimal(close) error = %v", err)
	}
	if !closePrice.Equal(decimal.RequireFromString("482.88")) {
		t.Errorf("close = %s, want 482.88", closePrice)
	}
	if _, err := series[1].Decimal("adjclose"); err != nil {
		t.Errorf("Decimal(adjclose) error = %v", err)
	}
}

func TestHistory_Error(t *testing.T) {
	fixtureServer(t, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)

	if _, err := History("NOPE", fineval.MustDate("2024-01-01"), fineval.MustDate("2024-02-01")); err == nil {
		t.Fatal("History() must surface the provider error")
	}
}

func TestLatest(t *testing.T) {
	fixtureServer(t, chartFixture)

	price, err := Latest("^SPX")
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if price != 5277.51 {
		t.Errorf("Latest() = %v, want 5277.51", price)
	}
}
