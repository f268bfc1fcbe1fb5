package command

import (
	"context"

	"github.com/kapu/movie-picker-go/internal/adapter"
	"github.com/kapu/movie-picker-go/internal/domain"
)

type StatusCommand struct {
	deps *Dependencies
}

func NewStatusCommand(deps *Dependencies) *StatusCommand {
	return &StatusCommand{deps: deps}
}

func (c *StatusCommand) Name() string {
	return "status"
}

func (c *StatusCommand) Description() string {
	return "Show the session state"
}

func (c *StatusCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	s := c.deps.Session
	facets := s.Facets()

	view := adapter.StatusView{
		CatalogPath:   s.Config().CatalogPath(),
		CatalogLoaded: s.CatalogLoaded(),
		Records:       s.CatalogSize(),
		Types:         len(facets.Types) - 1,
		Genres:        len(facets.Genres) - 1,
		HasServiceKey: s.Config().ServiceKey() != "",
		Backend:       c.deps.SettingsBackend,
		LastFilter:    s.LastFilter(),
	}
	if last := s.LastPick(); last != nil {
		view.LastPick = last.Movie.Title
	}

	return c.deps.SendMessage(cmdCtx.Source, c.deps.Formatter.FormatStatus(view))
}
