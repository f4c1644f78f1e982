// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/curioswitch/cookchat/stepchat/internal/display"
	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
)

type question struct {
	query string
	curr  int
}

type fakeAsker struct {
	answer string
	err    error
	asked  []question
}

func (a *fakeAsker) Ask(_ context.Context, query string, _ *recipedb.Recipe, curr int) (string, error) {
	a.asked = append(a.asked, question{query: query, curr: curr})
	return a.answer, a.err
}

func testRecipe() *recipedb.Recipe {
	return &recipedb.Recipe{
		Title: "Pancakes",
		Steps: []recipedb.Step{
			{Number: 1, Text: "Mix batter"},
			{Number: 2, Text: "Heat pan"},
			{Number: 3, Text: "Fry pancakes"},
		},
	}
}

func run(t *testing.T, asker Asker, input string) (*Loop, string) {
	t.Helper()
	var out bytes.Buffer
	l := NewLoop(testRecipe(), asker, bufio.NewReader(strings.NewReader(input)), display.NewPrinter(&out, 0))
	if err := l.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return l, out.String()
}

func TestRunNavigation(t *testing.T) {
	asker := &fakeAsker{}
	l, out := run(t, asker, "next\n\nnext\nnext\nback\nrepeat\nEXIT\nnext\n")

	for _, want := range []string{
		"RECIPE ASSISTANT INITIALIZED",
		"[Step 1/3]: Mix batter",
		"[Step 2/3]: Heat pan",
		"[Step 3/3]: Fry pancakes",
		"You are already at the last step!",
		"Goodbye! Happy cooking!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "[Step 2/3]: Heat pan"); got != 3 {
		t.Errorf("expected step 2 shown for next, back and repeat, shown %d times:\n%s", got, out)
	}
	if l.Step() != 2 {
		t.Errorf("ended on step %d, want 2", l.Step())
	}
	if len(asker.asked) != 0 {
		t.Errorf("navigation should not ask the assistant, asked %v", asker.asked)
	}
}

func TestRunColdStartIgnoresPriorStep(t *testing.T) {
	var out bytes.Buffer
	l := NewLoop(testRecipe(), &fakeAsker{}, bufio.NewReader(strings.NewReader("quit\n")), display.NewPrinter(&out, 0))
	l.curr = 3
	if err := l.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "[Step 1/3]: Mix batter") {
		t.Errorf("expected cold start at step 1:\n%s", out.String())
	}
	if l.Step() != 1 {
		t.Errorf("step = %d, want 1", l.Step())
	}
}

func TestRunAsksAssistant(t *testing.T) {
	asker := &fakeAsker{answer: "Use medium heat.\nAbout 2 minutes."}
	_, out := run(t, asker, "next\nhow hot should the pan be?\nquit\n")

	want := []question{{query: "how hot should the pan be?", curr: 2}}
	if diff := cmp.Diff(want, asker.asked, cmp.AllowUnexported(question{})); diff != "" {
		t.Errorf("unexpected questions (-want +got):\n%s", diff)
	}
	if !strings.Contains(out, "Assistant: Use medium heat. About 2 minutes.") {
		t.Errorf("output missing answer:\n%s", out)
	}
}

func TestRunAssistantErrorContinues(t *testing.T) {
	asker := &fakeAsker{err: errors.New("session refused")}
	l, out := run(t, asker, "what is a roux?\nnext\nquit\n")

	if !strings.Contains(out, "[System Error]: session refused") {
		t.Errorf("output missing system error:\n%s", out)
	}
	if !strings.Contains(out, "I'm having trouble connecting to the AI brain.") {
		t.Errorf("output missing apology:\n%s", out)
	}
	if l.Step() != 2 {
		t.Errorf("expected loop to continue after error, ended on step %d", l.Step())
	}
}

func TestRunEndOfInput(t *testing.T) {
	_, out := run(t, &fakeAsker{}, "next")
	if !strings.HasSuffix(strings.TrimSpace(out), "Goodbye! Happy cooking!") {
		t.Errorf("expected farewell at end of input:\n%s", out)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var out bytes.Buffer
	l := NewLoop(testRecipe(), &fakeAsker{}, bufio.NewReader(strings.NewReader("next\n")), display.NewPrinter(&out, 0))
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestRunLongLine(t *testing.T) {
	asker := &fakeAsker{answer: "That is a lot of text."}
	long := strings.Repeat("very ", 200_000) + "long question"
	l, out := run(t, asker, long+"\nnext\nquit\n")

	if len(asker.asked) != 1 || asker.asked[0].query != long {
		t.Errorf("expected the long line to reach the assistant, asked %d questions", len(asker.asked))
	}
	if !strings.Contains(out, "[Step 2/3]: Heat pan") {
		t.Errorf("expected the session to continue after a long line")
	}
	if l.Step() != 2 {
		t.Errorf("ended on step %d, want 2", l.Step())
	}
}

func TestReadLine(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  next \r\n\nlast line"))
	var got []string
	for {
		line, err := ReadLine(in)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		got = append(got, line)
	}
	if diff := cmp.Diff([]string{"next", "", "last line"}, got); diff != "" {
		t.Errorf("unexpected lines (-want +got):\n%s", diff)
	}
}
