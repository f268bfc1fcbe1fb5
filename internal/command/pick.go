package command

import (
	"context"
	stderrors "errors"

	"github.com/kapu/movie-picker-go/internal/adapter"
	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/kapu/movie-picker-go/internal/session"
	"github.com/kapu/movie-picker-go/pkg/errors"
)

type PickCommand struct {
	deps *Dependencies
}

func NewPickCommand(deps *Dependencies) *PickCommand {
	return &PickCommand{deps: deps}
}

func (c *PickCommand) Name() string {
	return "pick"
}

func (c *PickCommand) Description() string {
	return "Pick a random movie matching the filters"
}

func (c *PickCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	spec, ok := params[adapter.ParamFilter].(domain.FilterSpec)
	if !ok {
		spec = domain.NewFilterSpec()
	}

	pick, err := c.deps.Session.Pick(ctx, spec)
	return replyPick(c.deps, cmdCtx, pick, err)
}

type NextCommand struct {
	deps *Dependencies
}

func NewNextCommand(deps *Dependencies) *NextCommand {
	return &NextCommand{deps: deps}
}

func (c *NextCommand) Name() string {
	return "next"
}

func (c *NextCommand) Description() string {
	return "Pick again from the previous matches"
}

func (c *NextCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	pick, err := c.deps.Session.PickAgain(ctx)
	if stderrors.Is(err, session.ErrNoCandidates) {
		return c.deps.SendError(cmdCtx.Source, "Nothing to repeat yet. Use \"pick\" first.")
	}
	return replyPick(c.deps, cmdCtx, pick, err)
}

func replyPick(deps *Dependencies, cmdCtx *domain.CommandContext, pick *domain.Pick, err error) error {
	switch {
	case err == nil:
		return deps.SendMessage(cmdCtx.Source, deps.Formatter.FormatPick(pick))
	case stderrors.Is(err, session.ErrNoCatalog):
		return deps.SendError(cmdCtx.Source, adapter.MessageNoCatalog)
	case errors.IsEmptySelection(err):
		return deps.SendMessage(cmdCtx.Source, adapter.MessageNoMatches)
	default:
		return err
	}
}
