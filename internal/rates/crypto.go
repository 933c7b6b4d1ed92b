package rates

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/j0lvera/ratebot/internal/currency"
	"github.com/j0lvera/ratebot/internal/upstream"
	"github.com/tidwall/gjson"
)

const cryptoProvider = "курсов криптовалют"

// CryptoProvider asks for a coin slug priced in the target currencies.
type CryptoProvider struct {
	doer    upstream.Doer
	baseURL string
	targets []string
}

func NewCryptoProvider(doer upstream.Doer, baseURL string, targets []string) *CryptoProvider {
	return &CryptoProvider{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		targets: upper(targets),
	}
}

// Fetch implements Provider.
func (p *CryptoProvider) Fetch(ctx context.Context, q currency.Query) Result {
	vs := make([]string, len(p.targets))
	for i, t := range p.targets {
		vs[i] = strings.ToLower(t)
	}

	body, err := upstream.GetJSON(ctx, p.doer, cryptoProvider, p.baseURL+"/simple/price", url.Values{
		"ids":           {q.Code},
		"vs_currencies": {strings.Join(vs, ",")},
	})
	if err != nil {
		return Result{Query: q, Err: err}
	}

	prices := gjson.GetBytes(body, gjson.Escape(q.Code))
	if !prices.IsObject() {
		msg := upstream.ErrorMessage(body)
		if msg == "" {
			msg = "no price for " + q.Code
		}
		return Result{Query: q, Err: upstream.ProtocolError(cryptoProvider, http.StatusOK, msg)}
	}

	quotes := make([]Quote, 0, len(p.targets))
	for i, target := range p.targets {
		quote := Quote{Target: target}
		if v := prices.Get(gjson.Escape(vs[i])); v.Exists() {
			if rate, err := parseRate(v); err == nil {
				quote.Rate, quote.OK = rate, true
			}
		}
		quotes = append(quotes, quote)
	}

	return finish(cryptoProvider, q, quotes)
}
