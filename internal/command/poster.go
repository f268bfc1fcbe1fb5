package command

import (
	"context"

	"github.com/disintegration/imaging"
	"github.com/kapu/movie-picker-go/internal/adapter"
	"github.com/kapu/movie-picker-go/internal/domain"
	"go.uber.org/zap"
)

type PosterCommand struct {
	deps *Dependencies
}

func NewPosterCommand(deps *Dependencies) *PosterCommand {
	return &PosterCommand{deps: deps}
}

func (c *PosterCommand) Name() string {
	return "poster"
}

func (c *PosterCommand) Description() string {
	return "Save the poster of the last pick"
}

// Execute writes the resized poster; the format follows the file extension.
func (c *PosterCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	out, _ := params[adapter.ParamOutput].(string)
	if out == "" {
		return c.deps.SendError(cmdCtx.Source, "Please provide an output file, e.g. poster cover.jpg")
	}

	last := c.deps.Session.LastPick()
	if last == nil {
		return c.deps.SendError(cmdCtx.Source, "Nothing picked yet.")
	}
	if !last.Enrichment.HasPoster() {
		return c.deps.SendError(cmdCtx.Source, "No image available")
	}

	if err := imaging.Save(last.Enrichment.Poster, out, imaging.JPEGQuality(90)); err != nil {
		c.deps.Logger.Warn("Poster save failed", zap.String("path", out), zap.Error(err))
		return c.deps.SendError(cmdCtx.Source, "Failed to save poster: "+err.Error())
	}

	size := last.Enrichment.Poster.Bounds().Size()
	return c.deps.SendMessage(cmdCtx.Source, c.deps.Formatter.FormatPosterSaved(out, size.X, size.Y))
}
