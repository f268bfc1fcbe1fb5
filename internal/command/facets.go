package command

import (
	"context"

	"github.com/kapu/movie-picker-go/internal/adapter"
	"github.com/kapu/movie-picker-go/internal/domain"
)

type FacetsCommand struct {
	deps *Dependencies
}

func NewFacetsCommand(deps *Dependencies) *FacetsCommand {
	return &FacetsCommand{deps: deps}
}

func (c *FacetsCommand) Name() string {
	return "facets"
}

func (c *FacetsCommand) Description() string {
	return "List the available types and genres"
}

func (c *FacetsCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if !c.deps.Session.CatalogLoaded() {
		return c.deps.SendError(cmdCtx.Source, adapter.MessageNoCatalog)
	}
	return c.deps.SendMessage(cmdCtx.Source, c.deps.Formatter.FormatFacets(c.deps.Session.Facets()))
}
