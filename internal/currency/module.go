package currency

import (
	"github.com/j0lvera/ratebot/internal/config"
	"go.uber.org/fx"
)

// Params for creating the alias tables
type Params struct {
	fx.In

	Config *config.Config
}

// NewTablesFromConfig builds the alias tables with config.toml additions
func NewTablesFromConfig(p Params) (*Tables, error) {
	a := p.Config.Routing.Aliases
	return NewTables(a.Fiat, a.Crypto)
}

// Module provides the alias tables and the Resolver
func Module() fx.Option {
	return fx.Module(
		"currency",
		fx.Provide(
			NewTablesFromConfig,
			NewResolver,
		),
	)
}
