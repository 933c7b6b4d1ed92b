package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/j0lvera/ratebot/internal/config"
	"github.com/j0lvera/ratebot/internal/intent"
	"github.com/j0lvera/ratebot/internal/relay"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// modelCallbackPrefix marks inline-button payloads that select a model.
const modelCallbackPrefix = "model:"

type Params struct {
	fx.In

	Config *config.Config
	Relay  *relay.Handler
}

type Result struct {
	fx.Out

	Bot *tbot.Bot
}

// transport adapts Telegram updates to the Relay.
type transport struct {
	relay Relay
	log   zerolog.Logger
}

func New(lc fx.Lifecycle, p Params, log zerolog.Logger) (Result, error) {
	t := &transport{relay: p.Relay, log: log}

	tg, err := tbot.New(p.Config.Token, t.options()...)
	if err != nil {
		return Result{}, fmt.Errorf("unable to create telegram bot: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(
		fx.Hook{
			OnStart: func(context.Context) error {
				log.Info().Msg("starting telegram bot...")
				go tg.Start(ctx)
				return nil
			},
			OnStop: func(context.Context) error {
				log.Info().Msg("stopping telegram bot...")
				cancel()
				return nil
			},
		},
	)

	return Result{
		Bot: tg,
	}, nil
}

func Module() fx.Option {
	return fx.Module(
		"bot",
		fx.Provide(
			New,
		),
		fx.Invoke(
			func(bot *tbot.Bot) {},
		),
	)
}

func (t *transport) options() []tbot.Option {
	return []tbot.Option{
		tbot.WithMiddlewares(t.withRequestLogger, t.withRecover),
		tbot.WithDefaultHandler(t.handleText),
		tbot.WithMessageTextHandler(intent.ModelCommand, tbot.MatchTypePrefix, t.handleModelCommand),
		tbot.WithMessageTextHandler(intent.NewsCommand, tbot.MatchTypePrefix, t.handleNewsCommand),
		tbot.WithMessageTextHandler("/start", tbot.MatchTypeExact, t.handleHelp),
		tbot.WithMessageTextHandler("/help", tbot.MatchTypeExact, t.handleHelp),
		tbot.WithCallbackQueryDataHandler(modelCallbackPrefix, tbot.MatchTypePrefix, t.handleModelCallback),
		tbot.WithErrorsHandler(func(err error) {
			t.log.Error().Err(err).Msg("telegram polling error")
		}),
	}
}

// withRequestLogger attaches a logger carrying a request id and the chat id
// to the handler context.
func (t *transport) withRequestLogger(next tbot.HandlerFunc) tbot.HandlerFunc {
	return func(ctx context.Context, tg *tbot.Bot, update *models.Update) {
		logger := t.log.With().
			Str("request_id", uuid.NewString()).
			Int64("chat_id", chatID(update)).
			Logger()
		next(logger.WithContext(ctx), tg, update)
	}
}

// withRecover keeps a panicking handler from taking the poller down.
func (t *transport) withRecover(next tbot.HandlerFunc) tbot.HandlerFunc {
	return func(ctx context.Context, tg *tbot.Bot, update *models.Update) {
		defer func() {
			if r := recover(); r != nil {
				zerolog.Ctx(ctx).Error().
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")
			}
		}()
		next(ctx, tg, update)
	}
}

func (t *transport) handleText(ctx context.Context, tg *tbot.Bot, update *models.Update) {
	// Guard against non-text updates
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Prefix handlers are case-sensitive; "/Model" and "/NEWS" land here.
	switch name, _, _ := intent.Command(update.Message.Text); name {
	case intent.ModelCommand:
		t.handleModelCommand(ctx, tg, update)
		return
	case intent.NewsCommand:
		t.handleNewsCommand(ctx, tg, update)
		return
	}

	chatID := update.Message.Chat.ID
	tg.SendChatAction(ctx, &tbot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})

	t.send(ctx, tg, chatID, t.relay.HandleText(ctx, update.Message.Text), nil)
}

func (t *transport) handleModelCommand(ctx context.Context, tg *tbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name, args, _ := intent.Command(update.Message.Text)
	if name != intent.ModelCommand {
		t.handleText(ctx, tg, update)
		return
	}

	reply := t.relay.HandleModelCommand(ctx, args)
	t.send(ctx, tg, update.Message.Chat.ID, reply.Text, modelKeyboard(reply.Options))
}

func (t *transport) handleNewsCommand(ctx context.Context, tg *tbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name, args, _ := intent.Command(update.Message.Text)
	if name != intent.NewsCommand {
		t.handleText(ctx, tg, update)
		return
	}

	t.send(ctx, tg, update.Message.Chat.ID, t.relay.HandleNewsCommand(ctx, args), nil)
}

func (t *transport) handleHelp(ctx context.Context, tg *tbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	t.send(ctx, tg, update.Message.Chat.ID, t.relay.HandleHelp(), nil)
}

func (t *transport) handleModelCallback(ctx context.Context, tg *tbot.Bot, update *models.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	reply := t.relay.HandleModelSelectCallback(ctx, strings.TrimPrefix(query.Data, modelCallbackPrefix))

	if _, err := tg.AnswerCallbackQuery(ctx, &tbot.AnswerCallbackQueryParams{
		CallbackQueryID: query.ID,
		Text:            reply,
	}); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("unable to answer callback query")
	}

	if id := chatID(update); id != 0 {
		t.send(ctx, tg, id, reply, nil)
	}
}

func (t *transport) send(ctx context.Context, tg *tbot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	params := &tbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := tg.SendMessage(ctx, params); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("unable to send reply")
		return
	}
	zerolog.Ctx(ctx).Debug().Int("length", len(text)).Msg("reply sent")
}

// modelKeyboard offers one button per model, or nil when there is nothing
// to choose from.
func modelKeyboard(options []string) models.ReplyMarkup {
	if len(options) == 0 {
		return nil
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(options))
	for _, name := range options {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: name, CallbackData: modelCallbackPrefix + name},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// chatID finds the chat an update belongs to, or 0.
func chatID(update *models.Update) int64 {
	switch {
	case update == nil:
		return 0
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.InaccessibleMessage != nil:
		return update.CallbackQuery.Message.InaccessibleMessage.Chat.ID
	default:
		return 0
	}
}
