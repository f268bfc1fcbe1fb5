package command

import (
	"context"
	"strings"

	"github.com/kapu/movie-picker-go/internal/adapter"
	"github.com/kapu/movie-picker-go/internal/domain"
	"go.uber.org/zap"
)

type KeyCommand struct {
	deps *Dependencies
}

func NewKeyCommand(deps *Dependencies) *KeyCommand {
	return &KeyCommand{deps: deps}
}

func (c *KeyCommand) Name() string {
	return "key"
}

func (c *KeyCommand) Description() string {
	return "Set the OMDb API key"
}

func (c *KeyCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	key, _ := params[adapter.ParamKey].(string)
	key = strings.TrimSpace(key)

	if err := c.deps.Session.SetServiceKey(ctx, key); err != nil {
		c.deps.Logger.Error("Failed to persist API key", zap.Error(err))
		return c.deps.SendError(cmdCtx.Source, "API key updated for this session but could not be saved: "+err.Error())
	}
	return c.deps.SendMessage(cmdCtx.Source, c.deps.Formatter.FormatKeySaved(key))
}
