package model

import (
	"github.com/j0lvera/ratebot/internal/config"
	"go.uber.org/fx"
)

// Params for creating a Selector
type Params struct {
	fx.In

	Config *config.Config
}

// New creates the Selector at the configured default model
func New(p Params) *Selector {
	return NewSelector(p.Config.Model, p.Config.AllowedModels)
}

// Module provides the model Selector
func Module() fx.Option {
	return fx.Module(
		"model",
		fx.Provide(
			New,
		),
	)
}
