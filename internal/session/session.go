// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package session runs the interactive step-by-step cooking loop.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/curioswitch/cookchat/stepchat/internal/display"
	"github.com/curioswitch/cookchat/stepchat/internal/navigate"
	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
)

// Asker answers questions navigation can't.
type Asker interface {
	Ask(ctx context.Context, query string, recipe *recipedb.Recipe, curr int) (string, error)
}

// NewLoop returns a Loop reading user input from in.
func NewLoop(recipe *recipedb.Recipe, asker Asker, in *bufio.Reader, out *display.Printer) *Loop {
	return &Loop{
		recipe: recipe,
		asker:  asker,
		in:     in,
		out:    out,
	}
}

// Loop walks a user through a recipe one step at a time.
type Loop struct {
	recipe *recipedb.Recipe
	asker  Asker
	in     *bufio.Reader
	out    *display.Printer

	curr int
}

// Step returns the step the user is currently on.
func (l *Loop) Step() int {
	return l.curr
}

// Run runs the loop until the user exits, input ends, or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	l.out.Slow("\n----------------------------------------------------")
	l.out.Slow(" RECIPE ASSISTANT INITIALIZED")
	l.out.Slow("----------------------------------------------------")
	l.out.Slow(" Commands: 'next', 'back', 'repeat', 'exit'")

	l.curr = 1
	start := navigate.Dispatch("start", l.recipe, 1)
	l.out.Line("")
	l.out.Words(start.Text)

	for {
		l.out.Prompt("\nYou: ")
		query, err := ReadLine(l.in)
		if errors.Is(err, io.EOF) {
			l.out.Line("")
			l.out.Slow(farewell)
			return nil
		}
		if err != nil {
			return fmt.Errorf("session: reading input: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if isExit(query) {
			l.out.Slow(farewell)
			return nil
		}
		if query == "" {
			continue
		}

		if res := navigate.Dispatch(query, l.recipe, l.curr); res.Handled {
			l.curr = res.Index
			l.out.Line("")
			l.out.Words(res.Text)
			continue
		}

		l.out.SlowDelay("...", 100*time.Millisecond)
		answer, err := l.asker.Ask(ctx, query, l.recipe, l.curr)
		if err != nil {
			slog.ErrorContext(ctx, "session: asking assistant", "step", l.curr, "error", err)
			l.out.Line(fmt.Sprintf("\n[System Error]: %v", err))
			l.out.Slow("I'm having trouble connecting to the AI brain.")
			continue
		}
		l.out.Line("")
		l.out.Words("Assistant:", answer)
	}
}

const farewell = "Goodbye! Happy cooking!"

func isExit(query string) bool {
	q := strings.ToLower(query)
	return q == "exit" || q == "quit"
}

// ReadLine returns the next trimmed line of in. Lines may be any length. It
// returns io.EOF only once no input remains.
func ReadLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	return strings.TrimSpace(line), err
}
