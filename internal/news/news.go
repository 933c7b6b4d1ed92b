// Package news looks up top headlines and renders them for the chat.
package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/j0lvera/ratebot/internal/upstream"
	"github.com/tidwall/gjson"
)

const provider = "новостей"

// ErrNotConfigured is returned when no news API key was supplied.
var ErrNotConfigured = errors.New("news api key is not configured")

// Item is a single headline.
type Item struct {
	Title string
	URL   string
}

// Client queries the top-headlines endpoint.
type Client struct {
	doer     upstream.Doer
	baseURL  string
	apiKey   string
	country  string
	pageSize int
}

func NewClient(doer upstream.Doer, baseURL, apiKey, country string, pageSize int) *Client {
	return &Client{
		doer:     doer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		country:  country,
		pageSize: pageSize,
	}
}

// Fetch returns up to pageSize headlines. An empty topic asks for the
// country's top headlines instead of a search.
func (c *Client) Fetch(ctx context.Context, topic string) ([]Item, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	query := url.Values{
		"apiKey":   {c.apiKey},
		"pageSize": {strconv.Itoa(c.pageSize)},
	}
	if topic = strings.TrimSpace(topic); topic != "" {
		query.Set("q", topic)
	} else {
		query.Set("country", c.country)
	}

	body, err := upstream.GetJSON(ctx, c.doer, provider, c.baseURL+"/top-headlines", query)
	if err != nil {
		return nil, err
	}

	if gjson.GetBytes(body, "status").String() == "error" {
		return nil, upstream.ProtocolError(provider, http.StatusOK, upstream.ErrorMessage(body))
	}

	articles := gjson.GetBytes(body, "articles")
	if !articles.IsArray() {
		return nil, upstream.ProtocolError(provider, http.StatusOK, "response has no articles")
	}

	var items []Item
	for _, a := range articles.Array() {
		title := strings.TrimSpace(a.Get("title").String())
		link := strings.TrimSpace(a.Get("url").String())
		if title == "" || link == "" {
			continue
		}
		items = append(items, Item{Title: title, URL: link})
		if len(items) == c.pageSize {
			break
		}
	}

	return items, nil
}

// Format renders headlines as bulleted blocks separated by blank lines.
func Format(items []Item) string {
	if len(items) == 0 {
		return "По вашему запросу ничего не найдено. Попробуйте другую тему."
	}

	blocks := make([]string, len(items))
	for i, it := range items {
		blocks[i] = fmt.Sprintf("• %s\n%s", it.Title, it.URL)
	}
	return strings.Join(blocks, "\n\n")
}

// FormatError renders a failed lookup.
func FormatError(err error) string {
	if errors.Is(err, ErrNotConfigured) {
		return "📰 Новости недоступны: не задан ключ NEWS_API_KEY."
	}
	return "❌ Не удалось получить новости: " + upstream.Describe(err)
}
