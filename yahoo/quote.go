package yahoo

import (
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// Latest returns the latest regular-market price for a symbol.
//
// It deliberately bypasses the disk cache: the spot price moves all day.
func Latest(symbol string) (float64, error) {
	addr := chartURL + url.PathEscape(symbol) + "?interval=1d&range=1d"

	var jobj any
	if err := jwget(new(http.Client), addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", symbol, err)
	}
	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %s %v", symbol, path, "not a float", jval)
	}
	return val, nil
}
