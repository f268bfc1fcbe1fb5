package command

import (
	"context"

	"github.com/kapu/movie-picker-go/internal/adapter"
	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/kapu/movie-picker-go/internal/session"
	"go.uber.org/zap"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error
}

type Dependencies struct {
	Session         *session.Session
	Formatter       *adapter.ResponseFormatter
	SettingsBackend string
	SendMessage     func(source, message string) error
	SendError       func(source, message string) error
	Logger          *zap.Logger
}

// RegisterAll registers every picker command on registry.
func RegisterAll(registry *Registry, deps *Dependencies) {
	registry.Register(NewLoadCommand(deps))
	registry.Register(NewPickCommand(deps))
	registry.Register(NewNextCommand(deps))
	registry.Register(NewKeyCommand(deps))
	registry.Register(NewFacetsCommand(deps))
	registry.Register(NewStatusCommand(deps))
	registry.Register(NewPosterCommand(deps))
	registry.Register(NewHelpCommand(deps))
}
