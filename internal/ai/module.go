package ai

import (
	"github.com/j0lvera/ratebot/internal/config"
	"github.com/j0lvera/ratebot/internal/upstream"
	"go.uber.org/fx"
)

// Params for creating a chat completion client
type Params struct {
	fx.In

	Config *config.Config
	Doer   upstream.Doer
}

// Result of creating a chat completion client
type Result struct {
	fx.Out

	Completer Completer
}

// New creates a chat completion client based on configuration
func New(p Params) (Result, error) {
	client, err := NewClient(p.Doer, p.Config.APIKey, p.Config.BaseURL, p.Config.ProjectID, p.Config.Model)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Completer: client,
	}, nil
}

// Module provides the chat Completer
func Module() fx.Option {
	return fx.Module(
		"ai",
		fx.Provide(
			New,
		),
	)
}
