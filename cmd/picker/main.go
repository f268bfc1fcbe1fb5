package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	goflags "github.com/jessevdk/go-flags"
	"github.com/kapu/movie-picker-go/internal/app"
	"github.com/kapu/movie-picker-go/internal/config"
	"github.com/kapu/movie-picker-go/internal/util"
	"go.uber.org/zap"
)

const version = "1.0.0"

type options struct {
	EnvFile      []string `long:"env-file" description:"Load environment from this file (repeatable)"`
	LogLevel     string   `long:"log-level" description:"Override LOG_LEVEL (debug, info, warn, error)"`
	SettingsFile string   `long:"settings-file" description:"Override SETTINGS_FILE"`
	Catalog      string   `long:"catalog" description:"Load this CSV after restoring the session"`
	Version      bool     `long:"version" description:"Show version and exit"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the picker and returns the process exit code. Deferred cleanup
// has finished by the time it returns.
func run(argv []string, stdout io.Writer) int {
	var opts options
	parser := goflags.NewParser(&opts, goflags.Default|goflags.PassAfterNonOption)
	parser.Name = "picker"
	parser.Usage = "[OPTIONS] [command [args...]]"
	parser.LongDescription = "Pick a random movie from an IMDb list export. " +
		"Without a command an interactive prompt reads commands from stdin."

	args, err := parser.ParseArgs(argv)
	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok && flagsErr.Type == goflags.ErrHelp {
			return 0
		}
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "picker %s\n", version)
		return 0
	}

	// Load configuration
	cfg, err := config.Load(opts.EnvFile...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.SettingsFile != "" {
		cfg.Settings.File = opts.SettingsFile
	}

	// Initialize logger
	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("Movie picker starting...",
		zap.String("version", version),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("settings_backend", cfg.Settings.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	buildCtx, buildCancel := context.WithTimeout(ctx, 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger, stdout)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		return 1
	}
	defer container.Close()

	if err := container.Session.Restore(ctx); err != nil {
		logger.Warn("Failed to restore settings, starting with defaults", zap.Error(err))
	}

	if opts.Catalog != "" {
		if _, err := container.Handle(ctx, "cli", "load "+util.QuoteField(opts.Catalog)); err != nil {
			logger.Error("Command failed", zap.Error(err))
		}
	}

	if len(args) > 0 {
		if _, err := container.Handle(ctx, "cli", joinArgs(args)); err != nil {
			logger.Error("Command failed", zap.Error(err))
			return 1
		}
		return 0
	}

	runPrompt(ctx, container, logger)
	logger.Info("Shutdown complete")
	return 0
}

// runPrompt reads commands from stdin until quit, EOF or a signal.
func runPrompt(ctx context.Context, container *app.Container, logger *zap.Logger) {
	interactive := isTerminal(os.Stdin)
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logger.Warn("Input read failed", zap.Error(err))
		}
	}()

	for {
		if interactive {
			fmt.Print("> ")
		}

		select {
		case <-ctx.Done():
			logger.Info("Received shutdown signal")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			quit, err := container.Handle(ctx, "stdin", line)
			if err != nil {
				logger.Error("Command failed", zap.String("input", line), zap.Error(err))
			}
			if quit {
				return
			}
		}
	}
}

func joinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = util.QuoteField(arg)
	}
	return strings.Join(quoted, " ")
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
