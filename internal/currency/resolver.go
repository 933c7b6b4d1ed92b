// Package currency turns free text into a canonical rate query.
package currency

import (
	"strings"

	"github.com/j0lvera/ratebot/internal/intent"
)

// Kind tells the rate service which provider serves a query.
type Kind int

const (
	Fiat Kind = iota + 1
	Crypto
)

func (k Kind) String() string {
	switch k {
	case Fiat:
		return "fiat"
	case Crypto:
		return "crypto"
	default:
		return "unknown"
	}
}

// Query is the resolved currency for one message.
type Query struct {
	Kind Kind
	// Code is an ISO code for fiat and a provider slug for crypto.
	Code string
	// Token is the user's word that produced Code.
	Token string
}

// Resolver scans tokens against the alias tables.
type Resolver struct {
	tables *Tables
}

func NewResolver(tables *Tables) *Resolver {
	return &Resolver{tables: tables}
}

// Resolve tokenizes text and resolves the tokens.
func (r *Resolver) Resolve(text string) (Query, bool) {
	return r.ResolveTokens(intent.Tokenize(text))
}

// ResolveTokens runs two full passes: every token against the crypto table,
// then every token against the fiat table or the raw ISO code shape. The
// first hit wins. Crypto goes first because the three-letter fallback would
// otherwise claim tickers like "btc".
func (r *Resolver) ResolveTokens(tokens []string) (Query, bool) {
	for _, tok := range tokens {
		if slug, ok := r.tables.Crypto(tok); ok {
			return Query{Kind: Crypto, Code: slug, Token: tok}, true
		}
	}

	for _, tok := range tokens {
		if code, ok := r.tables.Fiat(tok); ok {
			return Query{Kind: Fiat, Code: code, Token: tok}, true
		}
		if isISOCode(tok) {
			return Query{Kind: Fiat, Code: strings.ToUpper(tok), Token: tok}, true
		}
	}

	return Query{}, false
}

// isISOCode accepts exactly three ASCII letters.
func isISOCode(tok string) bool {
	if len(tok) != 3 {
		return false
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
