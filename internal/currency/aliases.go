package currency

import (
	"fmt"
	"maps"
	"strings"

	"github.com/j0lvera/ratebot/internal/intent"
)

// Table maps a lowercase natural-language token to a canonical code.
type Table map[string]string

// fiatAliases maps tokens to ISO 4217 codes.
var fiatAliases = Table{
	"доллар": "USD", "доллара": "USD", "долларов": "USD", "доллары": "USD",
	"бакс": "USD", "баксы": "USD", "баксов": "USD", "usd": "USD", "dollar": "USD",
	"евро": "EUR", "eur": "EUR", "euro": "EUR",
	"фунт": "GBP", "фунта": "GBP", "фунтов": "GBP", "стерлинг": "GBP", "gbp": "GBP",
	"юань": "CNY", "юаня": "CNY", "юаней": "CNY", "cny": "CNY",
	"иена": "JPY", "иены": "JPY", "йена": "JPY", "йены": "JPY", "jpy": "JPY",
	"франк": "CHF", "франка": "CHF", "франков": "CHF", "chf": "CHF",
	"рубль": "RUB", "рубля": "RUB", "рублей": "RUB", "rub": "RUB",
	"гривна": "UAH", "гривны": "UAH", "гривен": "UAH", "uah": "UAH",
	"тенге": "KZT", "kzt": "KZT",
	"лира": "TRY", "лиры": "TRY", "лир": "TRY",
	"злотый": "PLN", "злотых": "PLN", "pln": "PLN",
	"лари": "GEL", "gel": "GEL",
	"драм": "AMD", "драмов": "AMD", "amd": "AMD",
	"сум": "UZS", "сумов": "UZS", "uzs": "UZS",
}

// cryptoAliases maps tokens to price-provider slugs.
var cryptoAliases = Table{
	"биткоин": "bitcoin", "биткоина": "bitcoin", "биткойн": "bitcoin", "биток": "bitcoin",
	"btc": "bitcoin", "bitcoin": "bitcoin",
	"эфир": "ethereum", "эфира": "ethereum", "эфириум": "ethereum",
	"eth": "ethereum", "ethereum": "ethereum",
	"тон": "the-open-network", "ton": "the-open-network", "toncoin": "the-open-network",
	"тезер": "tether", "usdt": "tether", "tether": "tether",
	"солана": "solana", "sol": "solana", "solana": "solana",
	"доге": "dogecoin", "доги": "dogecoin", "догикоин": "dogecoin",
	"doge": "dogecoin", "dogecoin": "dogecoin",
	"рипл": "ripple", "xrp": "ripple", "ripple": "ripple",
	"лайткоин": "litecoin", "ltc": "litecoin", "litecoin": "litecoin",
	"бнб": "binancecoin", "bnb": "binancecoin",
	"трон": "tron", "trx": "tron", "tron": "tron",
	"кардано": "cardano", "ada": "cardano", "cardano": "cardano",
}

// FiatAliases returns a copy of the built-in fiat table.
func FiatAliases() Table {
	return maps.Clone(fiatAliases)
}

// CryptoAliases returns a copy of the built-in crypto table.
func CryptoAliases() Table {
	return maps.Clone(cryptoAliases)
}

// Tables is the immutable pair of alias tables the resolver scans.
type Tables struct {
	fiat   Table
	crypto Table
}

// NewTables merges extra entries over the built-in tables. Fiat codes are
// uppercased and crypto slugs lowercased. An alias present in both tables is
// rejected so the crypto-first scan never hides a fiat entry by accident.
func NewTables(extraFiat, extraCrypto map[string]string) (*Tables, error) {
	fiat := FiatAliases()
	crypto := CryptoAliases()

	for alias, code := range extraFiat {
		alias, code = strings.ToLower(strings.TrimSpace(alias)), strings.ToUpper(strings.TrimSpace(code))
		if alias == "" || code == "" {
			return nil, fmt.Errorf("empty fiat alias entry %q=%q", alias, code)
		}
		if !isToken(alias) {
			return nil, fmt.Errorf("fiat alias %q is not a single word", alias)
		}
		fiat[alias] = code
	}
	for alias, code := range extraCrypto {
		alias, code = strings.ToLower(strings.TrimSpace(alias)), strings.ToLower(strings.TrimSpace(code))
		if alias == "" || code == "" {
			return nil, fmt.Errorf("empty crypto alias entry %q=%q", alias, code)
		}
		if !isToken(alias) {
			return nil, fmt.Errorf("crypto alias %q is not a single word", alias)
		}
		crypto[alias] = code
	}

	for alias := range crypto {
		if _, ok := fiat[alias]; ok {
			return nil, fmt.Errorf("alias %q is both fiat and crypto", alias)
		}
	}

	return &Tables{fiat: fiat, crypto: crypto}, nil
}

// isToken reports whether alias survives tokenization unchanged, which is
// the only way the resolver can ever see it.
func isToken(alias string) bool {
	tokens := intent.Tokenize(alias)
	return len(tokens) == 1 && tokens[0] == alias
}

// Fiat looks up a fiat alias.
func (t *Tables) Fiat(token string) (string, bool) {
	code, ok := t.fiat[token]
	return code, ok
}

// Crypto looks up a crypto alias.
func (t *Tables) Crypto(token string) (string, bool) {
	slug, ok := t.crypto[token]
	return slug, ok
}
