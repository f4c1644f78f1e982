// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package cli bootstraps and runs the interactive cooking assistant.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	curiostack "github.com/curioswitch/go-curiostack/config"
	"github.com/joho/godotenv"

	"github.com/curioswitch/cookchat/stepchat/internal/config"
	"github.com/curioswitch/cookchat/stepchat/internal/display"
)

// SetupFunc wires collaborators from conf and runs the app.
type SetupFunc func(ctx context.Context, conf *config.Config, app *App) error

// Main loads the environment and configuration, configures logging, and
// calls setup. It returns the process exit code.
func Main(conf *config.Config, confFiles fs.FS, setup SetupFunc) int {
	return run(context.Background(), conf, confFiles, os.Stdin, os.Stdout, os.Stderr, setup)
}

func run(ctx context.Context, conf *config.Config, confFiles fs.FS, stdin io.Reader, stdout, stderr io.Writer, setup SetupFunc) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(stderr, "cli: loading .env: %v\n", err)
		return 1
	}

	if err := config.Load(conf, confFiles); err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	logger, err := newLogger(stderr, conf.Logging)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	slog.SetDefault(logger)

	app := NewApp(stdin, display.NewPrinter(stdout, conf.Typing.DelayMultiplier))
	if err := setup(ctx, conf, app); err != nil {
		slog.ErrorContext(ctx, "cli: running app", "error", err)
		return 1
	}
	return 0
}

func newLogger(out io.Writer, conf curiostack.Logging) (*slog.Logger, error) {
	level := slog.LevelInfo
	if conf.Level != "" {
		if err := level.UnmarshalText([]byte(conf.Level)); err != nil {
			return nil, fmt.Errorf("cli: invalid log level %q: %w", conf.Level, err)
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if conf.JSON {
		return slog.New(slog.NewJSONHandler(out, opts)), nil
	}
	return slog.New(slog.NewTextHandler(out, opts)), nil
}
