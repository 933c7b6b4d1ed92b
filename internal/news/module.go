package news

import (
	"github.com/j0lvera/ratebot/internal/config"
	"github.com/j0lvera/ratebot/internal/upstream"
	"go.uber.org/fx"
)

// Params for creating a news Client
type Params struct {
	fx.In

	Config *config.Config
	Doer   upstream.Doer
}

// New creates a news Client from configuration
func New(p Params) *Client {
	return NewClient(p.Doer, p.Config.NewsBaseURL, p.Config.NewsAPIKey, p.Config.NewsCountry, p.Config.NewsPageSize)
}

// Module provides the news Client
func Module() fx.Option {
	return fx.Module(
		"news",
		fx.Provide(
			New,
		),
	)
}
