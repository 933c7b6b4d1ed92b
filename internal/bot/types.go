package bot

import (
	"context"

	"github.com/j0lvera/ratebot/internal/relay"
)

// Relay is the routing core the transport forwards updates to.
type Relay interface {
	HandleText(ctx context.Context, text string) string
	HandleModelCommand(ctx context.Context, args []string) relay.ModelReply
	HandleNewsCommand(ctx context.Context, args []string) string
	HandleModelSelectCallback(ctx context.Context, value string) string
	HandleHelp() string
}
