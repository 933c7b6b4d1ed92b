package main

import (
	"github.com/j0lvera/ratebot/internal/ai"
	"github.com/j0lvera/ratebot/internal/bot"
	"github.com/j0lvera/ratebot/internal/config"
	"github.com/j0lvera/ratebot/internal/currency"
	"github.com/j0lvera/ratebot/internal/intent"
	"github.com/j0lvera/ratebot/internal/log"
	"github.com/j0lvera/ratebot/internal/model"
	"github.com/j0lvera/ratebot/internal/news"
	"github.com/j0lvera/ratebot/internal/rates"
	"github.com/j0lvera/ratebot/internal/relay"
	"github.com/j0lvera/ratebot/internal/status"
	"github.com/j0lvera/ratebot/internal/upstream"
	"go.uber.org/fx"
)

func main() {

	fx.New(
		config.Module(),
		log.Module(),
		upstream.Module(),
		intent.Module(),
		currency.Module(),
		rates.Module(),
		news.Module(),
		ai.Module(),
		model.Module(),
		relay.Module(),
		bot.Module(),
		status.Module(),
	).Run()
}
