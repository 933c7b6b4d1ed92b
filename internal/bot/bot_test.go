package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/j0lvera/ratebot/internal/relay"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type apiCall struct {
	method string
	form   map[string]string
}

// fakeAPI records Bot API calls and answers them successfully.
type fakeAPI struct {
	mu    sync.Mutex
	calls []apiCall
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	form := map[string]string{}
	switch {
	case strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"):
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		for k, v := range body {
			if s, ok := v.(string); ok {
				form[k] = s
				continue
			}
			raw, _ := json.Marshal(v)
			form[k] = string(raw)
		}
	case r.ParseMultipartForm(1<<20) == nil:
		for k, v := range r.MultipartForm.Value {
			form[k] = v[0]
		}
	case r.ParseForm() == nil:
		for k, v := range r.PostForm {
			form[k] = v[0]
		}
	}

	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	f.mu.Lock()
	f.calls = append(f.calls, apiCall{method: method, form: form})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if method == "sendMessage" {
		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
		return
	}
	w.Write([]byte(`{"ok":true,"result":true}`))
}

func (f *fakeAPI) byMethod(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

type stubRelay struct {
	texts     []string
	modelArgs [][]string
	newsArgs  [][]string
	callbacks []string
}

func (s *stubRelay) HandleText(_ context.Context, text string) string {
	s.texts = append(s.texts, text)
	return "text reply"
}

func (s *stubRelay) HandleModelCommand(_ context.Context, args []string) relay.ModelReply {
	s.modelArgs = append(s.modelArgs, args)
	if len(args) == 0 {
		return relay.ModelReply{Text: "🧠 Текущая модель: gpt-4o", Options: []string{"gpt-4", "gpt-4o"}}
	}
	return relay.ModelReply{Text: "✅ Модель обновлена на: " + args[0]}
}

func (s *stubRelay) HandleNewsCommand(_ context.Context, args []string) string {
	s.newsArgs = append(s.newsArgs, args)
	return "news reply"
}

func (s *stubRelay) HandleModelSelectCallback(_ context.Context, value string) string {
	s.callbacks = append(s.callbacks, value)
	return "✅ Модель обновлена на: " + value
}

func (s *stubRelay) HandleHelp() string {
	return "help"
}

func newTestTransport(t *testing.T) (*transport, *tbot.Bot, *fakeAPI, *stubRelay) {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	tg, err := tbot.New("test-token", tbot.WithServerURL(srv.URL), tbot.WithSkipGetMe())
	require.NoError(t, err)

	r := &stubRelay{}
	return &transport{relay: r, log: zerolog.Nop()}, tg, api, r
}

func textUpdate(text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Chat: models.Chat{ID: 42},
			Text: text,
		},
	}
}

func TestHandleText(t *testing.T) {
	tr, tg, api, r := newTestTransport(t)

	tr.handleText(context.Background(), tg, textUpdate("курс доллар"))

	assert.Equal(t, []string{"курс доллар"}, r.texts)
	assert.Len(t, api.byMethod("sendChatAction"), 1)
	sent := api.byMethod("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, "42", sent[0].form["chat_id"])
	assert.Equal(t, "text reply", sent[0].form["text"])
}

func TestHandleTextIgnoresEmpty(t *testing.T) {
	tr, tg, api, r := newTestTransport(t)

	tr.handleText(context.Background(), tg, &models.Update{})
	tr.handleText(context.Background(), tg, textUpdate(""))

	assert.Empty(t, r.texts)
	assert.Empty(t, api.byMethod("sendMessage"))
}

func TestHandleModelCommandShowsKeyboard(t *testing.T) {
	tr, tg, api, r := newTestTransport(t)

	tr.handleModelCommand(context.Background(), tg, textUpdate("/model"))

	require.Len(t, r.modelArgs, 1)
	assert.Empty(t, r.modelArgs[0])
	sent := api.byMethod("sendMessage")
	require.Len(t, sent, 1)
	markup := sent[0].form["reply_markup"]
	assert.Equal(t, "model:gpt-4", gjson.Get(markup, "inline_keyboard.0.0.callback_data").String())
	assert.Equal(t, "gpt-4o", gjson.Get(markup, "inline_keyboard.1.0.text").String())
}

func TestHandleModelCommandWithArgument(t *testing.T) {
	tr, tg, api, r := newTestTransport(t)

	tr.handleModelCommand(context.Background(), tg, textUpdate("/model@ratebot gpt-4"))

	assert.Equal(t, [][]string{{"gpt-4"}}, r.modelArgs)
	sent := api.byMethod("sendMessage")
	require.Len(t, sent, 1)
	assert.False(t, gjson.Get(sent[0].form["reply_markup"], "inline_keyboard").Exists())
}

func TestPrefixHandlersFallBackToText(t *testing.T) {
	tr, tg, _, r := newTestTransport(t)

	tr.handleModelCommand(context.Background(), tg, textUpdate("/models"))
	tr.handleNewsCommand(context.Background(), tg, textUpdate("/newsletter"))

	assert.Empty(t, r.modelArgs)
	assert.Empty(t, r.newsArgs)
	assert.Equal(t, []string{"/models", "/newsletter"}, r.texts)
}

func TestHandleTextRoutesCommandsCaseInsensitively(t *testing.T) {
	tr, tg, api, r := newTestTransport(t)

	tr.handleText(context.Background(), tg, textUpdate("/Model"))
	tr.handleText(context.Background(), tg, textUpdate("/NEWS спорт"))

	assert.Empty(t, r.texts)
	require.Len(t, r.modelArgs, 1)
	assert.Equal(t, [][]string{{"спорт"}}, r.newsArgs)

	sent := api.byMethod("sendMessage")
	require.Len(t, sent, 2)
	assert.Equal(t, "model:gpt-4", gjson.Get(sent[0].form["reply_markup"], "inline_keyboard.0.0.callback_data").String())
	assert.Equal(t, "news reply", sent[1].form["text"])
}

func TestHandleNewsCommand(t *testing.T) {
	tr, tg, api, r := newTestTransport(t)

	tr.handleNewsCommand(context.Background(), tg, textUpdate("/news космос и наука"))

	assert.Equal(t, [][]string{{"космос", "и", "наука"}}, r.newsArgs)
	assert.Equal(t, "news reply", api.byMethod("sendMessage")[0].form["text"])
}

func TestHandleModelCallback(t *testing.T) {
	tr, tg, api, r := newTestTransport(t)

	update := &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			Data: "model:gpt-4",
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: 7, Chat: models.Chat{ID: 42}},
			},
		},
	}
	tr.handleModelCallback(context.Background(), tg, update)

	assert.Equal(t, []string{"gpt-4"}, r.callbacks)
	answers := api.byMethod("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Equal(t, "cb-1", answers[0].form["callback_query_id"])
	sent := api.byMethod("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, "✅ Модель обновлена на: gpt-4", sent[0].form["text"])
}

func TestWithRecover(t *testing.T) {
	tr, tg, _, _ := newTestTransport(t)

	handler := tr.withRecover(func(context.Context, *tbot.Bot, *models.Update) {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		handler(context.Background(), tg, textUpdate("x"))
	})
}

func TestWithRequestLogger(t *testing.T) {
	tr, tg, _, _ := newTestTransport(t)
	var buf bytes.Buffer
	tr.log = zerolog.New(&buf)

	handler := tr.withRequestLogger(func(ctx context.Context, _ *tbot.Bot, _ *models.Update) {
		zerolog.Ctx(ctx).Info().Msg("handled")
	})
	handler(context.Background(), tg, textUpdate("x"))

	assert.Contains(t, buf.String(), `"chat_id":42`)
	assert.Contains(t, buf.String(), `"request_id":"`)
}

func TestModelKeyboard(t *testing.T) {
	assert.Nil(t, modelKeyboard(nil))

	markup, ok := modelKeyboard([]string{"gpt-4", "gpt-4o"}).(*models.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "model:gpt-4o", markup.InlineKeyboard[1][0].CallbackData)
}

func TestChatID(t *testing.T) {
	assert.Equal(t, int64(0), chatID(nil))
	assert.Equal(t, int64(42), chatID(textUpdate("x")))
	assert.Equal(t, int64(9), chatID(&models.Update{
		CallbackQuery: &models.CallbackQuery{
			Message: models.MaybeInaccessibleMessage{
				InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: 9}},
			},
		},
	}))
	assert.Equal(t, int64(0), chatID(&models.Update{CallbackQuery: &models.CallbackQuery{}}))
}
