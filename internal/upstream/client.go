package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/j0lvera/ratebot/internal/config"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"
)

// maxBodySize caps how much of a provider response is read.
const maxBodySize = 1 << 20

// Doer is satisfied by *http.Client and by the langchaingo openai client option.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// errorPaths are the places providers put their error text.
var errorPaths = []string{
	"error.message",
	"message",
	"error-type",
	"error",
	"status_message",
}

// NewHTTPClient returns the client every upstream call goes through, so a
// single timeout applies to all providers.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// GetJSON performs a GET and returns the body when the status is 200 and the
// body is valid JSON. Any other outcome is an *Error.
func GetJSON(ctx context.Context, doer Doer, provider, rawURL string, query url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid %s url: %w", provider, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", provider, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := doer.Do(req)
	if err != nil {
		return nil, TransportError(provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, TransportError(provider, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := ErrorMessage(body)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, ProtocolError(provider, resp.StatusCode, msg)
	}

	if !gjson.ValidBytes(body) {
		return nil, ProtocolError(provider, resp.StatusCode, "malformed JSON in response")
	}

	return body, nil
}

// ErrorMessage extracts a provider error text from a JSON body, if any.
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range errorPaths {
		if r := gjson.GetBytes(body, path); r.Exists() && r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	return ""
}

// IsTransport reports whether err is a transport-level upstream failure.
func IsTransport(err error) bool {
	var upErr *Error
	return errors.As(err, &upErr) && upErr.Kind == Transport
}

type Params struct {
	fx.In

	Config *config.Config
}

type Result struct {
	fx.Out

	Doer Doer
}

func New(p Params) Result {
	return Result{
		Doer: NewHTTPClient(p.Config.UpstreamTimeout),
	}
}

func Module() fx.Option {
	return fx.Module(
		"upstream",
		fx.Provide(
			New,
		),
	)
}
