// Package rates fetches exchange rates for a resolved currency query and
// renders them for the chat.
package rates

import (
	"context"
	"fmt"

	"github.com/j0lvera/ratebot/internal/currency"
	"github.com/shopspring/decimal"
)

// Quote is one target currency of a lookup.
type Quote struct {
	Target string
	Rate   decimal.Decimal
	// OK is false when the provider answered without this target.
	OK bool
}

// Result is the outcome of one lookup: quotes on success, Err otherwise.
type Result struct {
	Query  currency.Query
	Quotes []Quote
	Err    error
}

// Available returns the quotes the provider actually returned.
func (r Result) Available() []Quote {
	var out []Quote
	for _, q := range r.Quotes {
		if q.OK {
			out = append(out, q)
		}
	}
	return out
}

// Provider performs a single blocking rate lookup. Failures are reported in
// Result.Err, never returned separately.
type Provider interface {
	Fetch(ctx context.Context, q currency.Query) Result
}

// Service routes a query to the provider for its kind.
type Service struct {
	fiat   Provider
	crypto Provider
}

func NewService(fiat, crypto Provider) *Service {
	return &Service{
		fiat:   fiat,
		crypto: crypto,
	}
}

// Fetch implements Provider.
func (s *Service) Fetch(ctx context.Context, q currency.Query) Result {
	switch q.Kind {
	case currency.Fiat:
		return s.fiat.Fetch(ctx, q)
	case currency.Crypto:
		return s.crypto.Fetch(ctx, q)
	default:
		return Result{Query: q, Err: fmt.Errorf("unsupported currency kind %s", q.Kind)}
	}
}
