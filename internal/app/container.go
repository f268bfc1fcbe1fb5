package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/kapu/movie-picker-go/internal/adapter"
	"github.com/kapu/movie-picker-go/internal/command"
	"github.com/kapu/movie-picker-go/internal/config"
	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/kapu/movie-picker-go/internal/service/catalog"
	"github.com/kapu/movie-picker-go/internal/service/omdb"
	"github.com/kapu/movie-picker-go/internal/service/selector"
	"github.com/kapu/movie-picker-go/internal/service/settings"
	"github.com/kapu/movie-picker-go/internal/session"
	"github.com/kapu/movie-picker-go/pkg/errors"
	"go.uber.org/zap"
)

// Container bundles the assembled services of one picker session.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Session *session.Session

	adapter    *adapter.MessageAdapter
	formatter  *adapter.ResponseFormatter
	registry   *command.Registry
	dispatcher command.Dispatcher
	out        io.Writer
	closers    []func()
}

// Build assembles the settings store, the OMDb client and the session, and
// registers the commands. Replies are written to out, or stdout when nil.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = os.Stdout
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	store, err := newSettingsStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings store: %w", err)
	}
	closers = append(closers, func() {
		_ = store.Close()
	})

	client := omdb.NewClient(omdb.ClientConfig{
		BaseURL:           cfg.OMDb.BaseURL,
		Timeout:           cfg.OMDb.Timeout,
		RequestsPerSecond: cfg.OMDb.RequestsPerSecond,
	}, logger)

	sess := session.New(session.Deps{
		Catalog:           catalog.NewStore(logger),
		Selector:          selector.New(nil),
		Enricher:          omdb.NewEnricher(client, logger),
		Config:            settings.NewSessionConfig(store),
		DefaultServiceKey: cfg.OMDb.APIKey,
		Logger:            logger,
	})

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Session:   sess,
		adapter:   adapter.NewMessageAdapter(),
		formatter: adapter.NewResponseFormatter(),
		registry:  command.NewRegistry(),
		out:       out,
		closers:   closers,
	}

	deps := &command.Dependencies{
		Session:         sess,
		Formatter:       c.formatter,
		SettingsBackend: settingsBackendLabel(cfg),
		SendMessage:     c.write,
		SendError:       c.write,
		Logger:          logger,
	}
	command.RegisterAll(c.registry, deps)
	c.dispatcher = command.NewSequentialDispatcher(c.registry)

	logger.Info("Picker services assembled",
		zap.String("settings_backend", deps.SettingsBackend),
		zap.Int("commands", c.registry.Count()),
	)

	return c, nil
}

// Handle parses and executes one input line. It reports whether the line asked
// to end the session.
func (c *Container) Handle(ctx context.Context, source, line string) (quit bool, err error) {
	parsed, err := c.adapter.ParseMessage(line)
	if err != nil {
		var validationErr *errors.ValidationError
		if stderrors.As(err, &validationErr) {
			return false, c.write(source, c.formatter.FormatError(validationErr.Message))
		}
		return false, err
	}

	switch parsed.Type {
	case domain.CommandQuit:
		return true, nil
	case domain.CommandUnknown:
		if parsed.RawMessage == "" {
			return false, nil
		}
		return false, c.write(source, c.formatter.FormatUnknownCommand(parsed.RawMessage))
	}

	cmdCtx := domain.NewCommandContext(source, parsed.RawMessage)
	_, err = c.dispatcher.Publish(ctx, cmdCtx, command.CommandEvent{
		Type:   parsed.Type,
		Params: parsed.Params,
	})
	return false, err
}

// Close releases the resources opened by Build.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func (c *Container) write(_ string, message string) error {
	_, err := fmt.Fprintln(c.out, message)
	return err
}

func newSettingsStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (settings.Store, error) {
	switch cfg.Settings.Backend {
	case config.SettingsBackendRedis:
		return settings.NewRedisStore(ctx, settings.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		}, logger)
	default:
		return settings.NewFileStore(cfg.Settings.File, logger), nil
	}
}

func settingsBackendLabel(cfg *config.Config) string {
	if cfg.Settings.Backend == config.SettingsBackendRedis {
		return fmt.Sprintf("redis %s:%d/%s", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Key)
	}
	return "file " + cfg.Settings.File
}
