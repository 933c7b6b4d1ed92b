// Package status serves a small read-only HTTP endpoint for health checks.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/j0lvera/ratebot/internal/config"
	"github.com/j0lvera/ratebot/internal/model"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// NewRouter exposes liveness and the active model. The model can only be
// changed through the bot.
func NewRouter(models *model.Selector) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/model", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"model":   models.Get(),
			"allowed": models.Allowed(),
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type Params struct {
	fx.In

	Config *config.Config
	Models *model.Selector
	Logger zerolog.Logger
}

// Register starts the status server with the application when STATUS_ADDR
// is set.
func Register(lc fx.Lifecycle, p Params) {
	if p.Config.StatusAddr == "" {
		return
	}

	srv := &http.Server{
		Addr:              p.Config.StatusAddr,
		Handler:           NewRouter(p.Models),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				ln, err := net.Listen("tcp", srv.Addr)
				if err != nil {
					return err
				}
				p.Logger.Info().Str("addr", ln.Addr().String()).Msg("status server listening")
				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						p.Logger.Error().Err(err).Msg("status server stopped")
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				p.Logger.Info().Msg("stopping status server...")
				return srv.Shutdown(ctx)
			},
		},
	)
}

func Module() fx.Option {
	return fx.Module(
		"status",
		fx.Invoke(
			Register,
		),
	)
}
