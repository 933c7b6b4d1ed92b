// Package relay is the routing core: it classifies a message, calls the
// matching upstream and returns the reply text. It knows nothing about the
// messaging transport.
package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/j0lvera/ratebot/internal/ai"
	"github.com/j0lvera/ratebot/internal/currency"
	"github.com/j0lvera/ratebot/internal/intent"
	"github.com/j0lvera/ratebot/internal/model"
	"github.com/j0lvera/ratebot/internal/news"
	"github.com/j0lvera/ratebot/internal/rates"
	"github.com/rs/zerolog"
)

const (
	unresolvedCurrency = "Укажите валюту, например: «курс доллар», «курс евро» или «курс btc»."
	helpText           = "Я умею:\n" +
		"• курс <валюта> — курс валюты или криптовалюты (например, «курс доллар», «курс btc»)\n" +
		"• новости [тема] или /news [тема] — свежие заголовки\n" +
		"• /model [название] — показать или сменить модель GPT\n" +
		"Любое другое сообщение уходит в GPT."
)

// RateFetcher looks up rates for a resolved currency.
type RateFetcher interface {
	Fetch(ctx context.Context, q currency.Query) rates.Result
}

// NewsFetcher looks up headlines for an optional topic.
type NewsFetcher interface {
	Fetch(ctx context.Context, topic string) ([]news.Item, error)
}

// ModelReply is the answer to /model. Options lists models a transport may
// offer as buttons; it is empty when the command changed the model.
type ModelReply struct {
	Text    string
	Options []string
}

// Handler dispatches messages. It is safe for concurrent use; the model
// selector is its only mutable state.
type Handler struct {
	classifier *intent.Classifier
	resolver   *currency.Resolver
	rates      RateFetcher
	news       NewsFetcher
	chat       ai.Completer
	models     *model.Selector
}

func NewHandler(
	classifier *intent.Classifier,
	resolver *currency.Resolver,
	rateFetcher RateFetcher,
	newsFetcher NewsFetcher,
	chat ai.Completer,
	models *model.Selector,
) *Handler {
	return &Handler{
		classifier: classifier,
		resolver:   resolver,
		rates:      rateFetcher,
		news:       newsFetcher,
		chat:       chat,
		models:     models,
	}
}

// HandleText answers a plain-text message.
func (h *Handler) HandleText(ctx context.Context, text string) string {
	log := zerolog.Ctx(ctx)
	in := h.classifier.Classify(text)
	log.Debug().Str("intent", in.String()).Msg("message classified")

	switch in {
	case intent.Currency:
		return h.currency(ctx, text)
	case intent.News:
		return h.headlines(ctx, strings.Join(h.classifier.Strip(text), " "))
	case intent.ModelQuery:
		_, args, _ := intent.Command(text)
		return h.HandleModelCommand(ctx, args).Text
	default:
		// Unknown commands are not forwarded to the model.
		if _, _, isCommand := intent.Command(text); isCommand {
			return "Неизвестная команда.\n\n" + helpText
		}
		return h.complete(ctx, text)
	}
}

// HandleModelCommand shows the active model when args is empty and switches
// to args[0] otherwise.
func (h *Handler) HandleModelCommand(ctx context.Context, args []string) ModelReply {
	if len(args) == 0 {
		return ModelReply{
			Text:    "🧠 Текущая модель: " + h.models.Get(),
			Options: h.models.Allowed(),
		}
	}
	return ModelReply{Text: h.selectModel(ctx, args[0])}
}

// HandleNewsCommand answers /news; args are joined into the topic.
func (h *Handler) HandleNewsCommand(ctx context.Context, args []string) string {
	return h.headlines(ctx, strings.Join(args, " "))
}

// HandleModelSelectCallback applies a model chosen from the inline keyboard.
func (h *Handler) HandleModelSelectCallback(ctx context.Context, value string) string {
	return h.selectModel(ctx, value)
}

// HandleHelp answers /start and /help.
func (h *Handler) HandleHelp() string {
	return helpText
}

func (h *Handler) currency(ctx context.Context, text string) string {
	q, ok := h.resolver.ResolveTokens(h.classifier.Strip(text))
	if !ok {
		return unresolvedCurrency
	}

	log := zerolog.Ctx(ctx)
	log.Info().Str("kind", q.Kind.String()).Str("code", q.Code).Msg("rate request sending")

	res := h.rates.Fetch(ctx, q)
	if res.Err != nil {
		log.Error().Err(res.Err).Str("code", q.Code).Msg("unable to fetch rate")
	}
	return rates.Format(res)
}

func (h *Handler) headlines(ctx context.Context, topic string) string {
	log := zerolog.Ctx(ctx)
	log.Info().Str("topic", topic).Msg("news request sending")

	items, err := h.news.Fetch(ctx, topic)
	if err != nil {
		if !errors.Is(err, news.ErrNotConfigured) {
			log.Error().Err(err).Msg("unable to fetch news")
		}
		return news.FormatError(err)
	}
	return news.Format(items)
}

func (h *Handler) complete(ctx context.Context, text string) string {
	// Read once so the reply names the model this request was sent with.
	active := h.models.Get()

	log := zerolog.Ctx(ctx)
	log.Info().Str("model", active).Msg("ai request sending")

	completion, err := h.chat.Complete(ctx, active, text)
	if err != nil {
		log.Error().Err(err).Str("model", active).Msg("unable to generate ai response")
		return ai.FormatError(active, err)
	}

	log.Info().Str("model", completion.Model).Msg("ai response received")
	return ai.FormatCompletion(completion)
}

func (h *Handler) selectModel(ctx context.Context, requested string) string {
	active, err := h.models.Set(requested)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Str("requested", requested).Msg("model rejected")
		return fmt.Sprintf("❌ Модель недопустима.\nДопустимые варианты: %s", strings.Join(h.models.Allowed(), ", "))
	}

	zerolog.Ctx(ctx).Info().Str("model", active).Msg("model changed")
	return "✅ Модель обновлена на: " + active
}
