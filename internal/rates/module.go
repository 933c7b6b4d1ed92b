package rates

import (
	"github.com/j0lvera/ratebot/internal/config"
	"github.com/j0lvera/ratebot/internal/upstream"
	"go.uber.org/fx"
)

// Params for creating the rate Service
type Params struct {
	fx.In

	Config *config.Config
	Doer   upstream.Doer
}

// New creates a Service backed by the configured fiat and crypto providers
func New(p Params) *Service {
	return NewService(
		NewFiatProvider(p.Doer, p.Config.FiatBaseURL, p.Config.RateTargets),
		NewCryptoProvider(p.Doer, p.Config.CryptoBaseURL, p.Config.RateTargets),
	)
}

// Module provides the rate Service
func Module() fx.Option {
	return fx.Module(
		"rates",
		fx.Provide(
			New,
		),
	)
}
