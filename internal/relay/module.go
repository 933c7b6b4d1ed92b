package relay

import (
	"github.com/j0lvera/ratebot/internal/ai"
	"github.com/j0lvera/ratebot/internal/currency"
	"github.com/j0lvera/ratebot/internal/intent"
	"github.com/j0lvera/ratebot/internal/model"
	"github.com/j0lvera/ratebot/internal/news"
	"github.com/j0lvera/ratebot/internal/rates"
	"go.uber.org/fx"
)

// Params for creating a Handler
type Params struct {
	fx.In

	Classifier *intent.Classifier
	Resolver   *currency.Resolver
	Rates      *rates.Service
	News       *news.Client
	Chat       ai.Completer
	Models     *model.Selector
}

// New creates the routing Handler
func New(p Params) *Handler {
	return NewHandler(p.Classifier, p.Resolver, p.Rates, p.News, p.Chat, p.Models)
}

// Module provides the routing Handler
func Module() fx.Option {
	return fx.Module(
		"relay",
		fx.Provide(
			New,
		),
	)
}
