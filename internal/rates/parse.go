package rates

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/j0lvera/ratebot/internal/currency"
	"github.com/j0lvera/ratebot/internal/upstream"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// parseRate reads a JSON number without going through float64.
func parseRate(v gjson.Result) (decimal.Decimal, error) {
	if v.Type != gjson.Number {
		return decimal.Decimal{}, fmt.Errorf("rate is %s, not a number", v.Type)
	}
	return decimal.NewFromString(v.Raw)
}

// finish turns a set of quotes into a Result, failing when none arrived.
func finish(provider string, q currency.Query, quotes []Quote) Result {
	for _, quote := range quotes {
		if quote.OK {
			return Result{Query: q, Quotes: quotes}
		}
	}
	return Result{
		Query: q,
		Err:   upstream.ProtocolError(provider, http.StatusOK, "response has none of the requested rates"),
	}
}

func upper(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}
