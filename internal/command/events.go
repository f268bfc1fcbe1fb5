package command

import (
	"context"

	"github.com/kapu/movie-picker-go/internal/domain"
)

// CommandEvent is one command to execute.
type CommandEvent struct {
	Type   domain.CommandType
	Params map[string]any
}

// Dispatcher executes command events and reports how many ran.
type Dispatcher interface {
	Publish(ctx context.Context, cmdCtx *domain.CommandContext, events ...CommandEvent) (int, error)
}
