// Package intent decides which upstream a message is meant for.
package intent

import (
	"fmt"
	"strings"
)

// Intent is the classified purpose of an inbound message.
type Intent int

const (
	Chat Intent = iota
	Currency
	News
	ModelQuery
)

func (i Intent) String() string {
	switch i {
	case Currency:
		return "currency"
	case News:
		return "news"
	case ModelQuery:
		return "model"
	default:
		return "chat"
	}
}

const (
	ModelCommand = "/model"
	NewsCommand  = "/news"
)

// Match selects how trigger words are compared against a message.
type Match string

const (
	// MatchWord requires a token equal to the trigger.
	MatchWord Match = "word"
	// MatchPrefix accepts tokens that start with the trigger, so inflected
	// forms ("новостей") still match a stem.
	MatchPrefix Match = "prefix"
	// MatchSubstring accepts the trigger anywhere in the lowercased text.
	MatchSubstring Match = "substring"
)

// Classifier maps message text to an Intent using trigger words.
type Classifier struct {
	currency []string
	news     []string
	match    Match
}

// NewClassifier creates a classifier. Triggers are lowercased once here.
func NewClassifier(currency, news []string, match Match) (*Classifier, error) {
	switch match {
	case MatchWord, MatchPrefix, MatchSubstring:
	case "":
		match = MatchWord
	default:
		return nil, fmt.Errorf("unknown trigger match mode %q", match)
	}

	return &Classifier{
		currency: normalize(currency),
		news:     normalize(news),
		match:    match,
	}, nil
}

func normalize(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = Lower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Classify returns the first matching intent in the order
// Currency, News, ModelQuery, Chat.
func (c *Classifier) Classify(text string) Intent {
	name, _, isCommand := Command(text)
	lowered := Lower(text)
	tokens := Tokenize(text)

	switch {
	case c.contains(lowered, tokens, c.currency):
		return Currency
	case c.contains(lowered, tokens, c.news) || (isCommand && name == NewsCommand):
		return News
	case isCommand && name == ModelCommand:
		return ModelQuery
	default:
		return Chat
	}
}

// Strip tokenizes text and drops a leading command and every trigger token.
// What remains is the payload: currency words or a news topic.
func (c *Classifier) Strip(text string) []string {
	if _, args, ok := Command(text); ok {
		text = strings.Join(args, " ")
	}

	var out []string
	for _, tok := range Tokenize(text) {
		if c.isTrigger(tok, c.currency) || c.isTrigger(tok, c.news) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func (c *Classifier) contains(lowered string, tokens, triggers []string) bool {
	if c.match == MatchSubstring {
		for _, t := range triggers {
			if strings.Contains(lowered, t) {
				return true
			}
		}
		return false
	}

	for _, tok := range tokens {
		if c.isTrigger(tok, triggers) {
			return true
		}
	}
	return false
}

func (c *Classifier) isTrigger(tok string, triggers []string) bool {
	for _, t := range triggers {
		switch c.match {
		case MatchPrefix:
			if strings.HasPrefix(tok, t) {
				return true
			}
		case MatchSubstring:
			if strings.Contains(tok, t) {
				return true
			}
		default:
			if tok == t {
				return true
			}
		}
	}
	return false
}
