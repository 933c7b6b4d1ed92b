package rates

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/j0lvera/ratebot/internal/currency"
	"github.com/j0lvera/ratebot/internal/upstream"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const fiatProvider = "курсов валют"

// FiatProvider reads a full rate table for an ISO code and picks the targets.
// The endpoint shape is open.er-api.com's GET /latest/<CODE>.
type FiatProvider struct {
	doer    upstream.Doer
	baseURL string
	targets []string
}

func NewFiatProvider(doer upstream.Doer, baseURL string, targets []string) *FiatProvider {
	return &FiatProvider{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		targets: upper(targets),
	}
}

// Fetch implements Provider.
func (p *FiatProvider) Fetch(ctx context.Context, q currency.Query) Result {
	body, err := upstream.GetJSON(ctx, p.doer, fiatProvider, p.baseURL+"/latest/"+url.PathEscape(q.Code), nil)
	if err != nil {
		return Result{Query: q, Err: err}
	}

	table := gjson.GetBytes(body, "rates")
	if !table.IsObject() || gjson.GetBytes(body, "result").String() == "error" {
		msg := upstream.ErrorMessage(body)
		if msg == "" {
			msg = "response has no rates table"
		}
		return Result{Query: q, Err: upstream.ProtocolError(fiatProvider, http.StatusOK, msg)}
	}

	quotes := make([]Quote, 0, len(p.targets))
	for _, target := range p.targets {
		quote := Quote{Target: target}
		if v := table.Get(gjson.Escape(target)); v.Exists() {
			if rate, err := parseRate(v); err == nil {
				quote.Rate, quote.OK = rate, true
			}
		} else if target == q.Code {
			// Some providers leave the base out of its own table.
			quote.Rate, quote.OK = decimal.NewFromInt(1), true
		}
		quotes = append(quotes, quote)
	}

	return finish(fiatProvider, q, quotes)
}
