package command

import (
	"context"
	"maps"

	"github.com/kapu/movie-picker-go/internal/domain"
)

type sequentialDispatcher struct {
	registry *Registry
}

// NewSequentialDispatcher creates a dispatcher that executes command events in
// the order they are received. The command type is the registry key.
func NewSequentialDispatcher(registry *Registry) Dispatcher {
	return &sequentialDispatcher{registry: registry}
}

func (d *sequentialDispatcher) Publish(ctx context.Context, cmdCtx *domain.CommandContext, events ...CommandEvent) (int, error) {
	if d == nil || d.registry == nil {
		return 0, nil
	}

	executed := 0
	for _, event := range events {
		if !event.Type.IsValid() || event.Type == domain.CommandUnknown || event.Type == domain.CommandQuit {
			continue
		}

		params := maps.Clone(event.Params)
		if params == nil {
			params = map[string]any{}
		}
		if err := d.registry.Execute(ctx, cmdCtx, event.Type.String(), params); err != nil {
			return executed, err
		}
		executed++
	}
	return executed, nil
}
