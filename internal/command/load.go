package command

import (
	"context"
	stderrors "errors"

	"github.com/kapu/movie-picker-go/internal/adapter"
	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/kapu/movie-picker-go/pkg/errors"
	"go.uber.org/zap"
)

type LoadCommand struct {
	deps *Dependencies
}

func NewLoadCommand(deps *Dependencies) *LoadCommand {
	return &LoadCommand{deps: deps}
}

func (c *LoadCommand) Name() string {
	return "load"
}

func (c *LoadCommand) Description() string {
	return "Load a catalog CSV file"
}

func (c *LoadCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	path, _ := params[adapter.ParamPath].(string)
	if path == "" {
		return c.deps.SendError(cmdCtx.Source, "Please provide the path of a CSV file.")
	}

	count, err := c.deps.Session.LoadCatalog(ctx, path)
	if err != nil {
		c.deps.Logger.Warn("Load command failed", zap.String("path", path), zap.Error(err))
		return c.deps.SendError(cmdCtx.Source, c.deps.Formatter.FormatLoadFailed(loadCause(err)))
	}

	return c.deps.SendMessage(cmdCtx.Source, c.deps.Formatter.FormatLoaded(count))
}

// loadCause strips the LoadError wrapper so the user sees the underlying reason.
func loadCause(err error) error {
	var loadErr *errors.LoadError
	if stderrors.As(err, &loadErr) && loadErr.Cause != nil {
		return loadErr.Cause
	}
	return err
}
