package intent

import (
	"github.com/j0lvera/ratebot/internal/config"
	"go.uber.org/fx"
)

// Params for creating a Classifier
type Params struct {
	fx.In

	Config *config.Config
}

// New creates a Classifier from the configured triggers
func New(p Params) (*Classifier, error) {
	t := p.Config.Routing.Triggers
	return NewClassifier(t.Currency, t.News, Match(t.Match))
}

// Module provides the intent Classifier
func Module() fx.Option {
	return fx.Module(
		"intent",
		fx.Provide(
			New,
		),
	)
}
