package ai

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/j0lvera/ratebot/internal/upstream"
	"github.com/tidwall/gjson"
)

// exchange records what the provider sent back for one completion call.
type exchange struct {
	status  int
	model   string
	message string
}

type exchangeKey struct{}

func withExchange(ctx context.Context, ex *exchange) context.Context {
	return context.WithValue(ctx, exchangeKey{}, ex)
}

// projectDoer adds the project header and copies the status, the echoed
// model and any error message out of the response before langchaingo
// decodes it.
type projectDoer struct {
	next      upstream.Doer
	projectID string
}

func (d *projectDoer) Do(req *http.Request) (*http.Response, error) {
	if d.projectID != "" {
		req.Header.Set("OpenAI-Project", d.projectID)
	}

	resp, err := d.next.Do(req)
	if err != nil {
		return nil, err
	}

	ex, ok := req.Context().Value(exchangeKey{}).(*exchange)
	if !ok {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	ex.status = resp.StatusCode
	ex.model = gjson.GetBytes(body, "model").String()
	ex.message = upstream.ErrorMessage(body)

	return resp, nil
}
