// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package display writes assistant output with a typewriter effect.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const (
	charDelay = 20 * time.Millisecond
	wordDelay = 150 * time.Millisecond

	// DefaultPause is a short beat between sections of output.
	DefaultPause = 350 * time.Millisecond
)

// Printer writes text to an output, pausing between characters or words.
// A delay multiplier of zero writes everything immediately.
type Printer struct {
	out        io.Writer
	multiplier float64
	sleep      func(time.Duration)
}

// NewPrinter returns a Printer writing to out. Delays are only applied when
// out is a terminal.
func NewPrinter(out io.Writer, multiplier float64) *Printer {
	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		multiplier = 0
	}
	return &Printer{
		out:        out,
		multiplier: multiplier,
		sleep:      time.Sleep,
	}
}

func (p *Printer) wait(d time.Duration) {
	if p.multiplier <= 0 {
		return
	}
	p.sleep(time.Duration(float64(d) * p.multiplier))
}

// Slow writes text one character at a time followed by a newline.
func (p *Printer) Slow(text string) {
	p.SlowDelay(text, charDelay)
}

// SlowDelay is Slow with a custom per-character delay.
func (p *Printer) SlowDelay(text string, delay time.Duration) {
	if p.multiplier <= 0 {
		_, _ = fmt.Fprintln(p.out, text)
		return
	}
	for _, r := range text {
		_, _ = fmt.Fprint(p.out, string(r))
		p.wait(delay)
	}
	_, _ = fmt.Fprintln(p.out)
}

// Words writes the space-joined args one word at a time followed by a
// newline. Runs of whitespace, including newlines, collapse to one space.
func (p *Printer) Words(args ...string) {
	p.WordsDelay(wordDelay, args...)
}

// WordsDelay is Words with a custom per-word delay.
func (p *Printer) WordsDelay(delay time.Duration, args ...string) {
	words := strings.Fields(strings.Join(args, " "))
	for _, w := range words {
		_, _ = fmt.Fprint(p.out, w+" ")
		p.wait(delay)
	}
	_, _ = fmt.Fprintln(p.out)
}

// Line writes text as-is followed by a newline.
func (p *Printer) Line(text string) {
	_, _ = fmt.Fprintln(p.out, text)
}

// Prompt writes text without a trailing newline.
func (p *Printer) Prompt(text string) {
	_, _ = fmt.Fprint(p.out, text)
}

// Pause waits for d, scaled by the delay multiplier.
func (p *Printer) Pause(d time.Duration) {
	p.wait(d)
}
