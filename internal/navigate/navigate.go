// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package navigate interprets user utterances as step navigation commands.
package navigate

import (
	"fmt"
	"strings"

	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
)

// Intent is the navigation command recognized in an utterance.
type Intent int

// Intents in the order they are checked. IntentUnhandled means the utterance
// should go to the assistant.
const (
	IntentUnhandled Intent = iota
	IntentNext
	IntentPrevious
	IntentStart
	IntentRepeat
)

func (i Intent) String() string {
	switch i {
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	case IntentStart:
		return "start"
	case IntentRepeat:
		return "repeat"
	default:
		return "unhandled"
	}
}

// Messages returned instead of a step when navigation can't move.
const (
	MessageLastStep     = "You are already at the last step!"
	MessageFirstStep    = "You are currently at the first step."
	MessageStepNotFound = "Error: Step not found."
)

type rule struct {
	intent   Intent
	keywords []string
}

// rules are evaluated in order and the first rule with a keyword contained
// anywhere in the utterance wins, so "go back to next" is a next.
var rules = []rule{
	{IntentNext, []string{"next", "forward", "advance", "go on", "after that"}},
	{IntentPrevious, []string{"previous", "prev", "back", "last step", "go back", "before that"}},
	{IntentStart, []string{"start", "begin", "first step"}},
	{IntentRepeat, []string{"repeat", "say that again", "what was that"}},
}

// Classify returns the navigation intent of query.
func Classify(query string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.intent
			}
		}
	}
	return IntentUnhandled
}

// Result is the outcome of dispatching one utterance.
type Result struct {
	// Handled is false when the utterance is not a navigation command and
	// should be answered some other way.
	Handled bool

	// Index is the step number to present next.
	Index int

	// Text is the message to show the user.
	Text string
}

// Dispatch applies query to the current step number curr of recipe. It never
// fails; missing steps are reported in the returned text.
func Dispatch(query string, recipe *recipedb.Recipe, curr int) Result {
	total := len(recipe.Steps)

	next := curr
	switch Classify(query) {
	case IntentNext:
		if curr >= total {
			return Result{Handled: true, Index: curr, Text: MessageLastStep}
		}
		next = curr + 1
	case IntentPrevious:
		if curr <= 1 {
			return Result{Handled: true, Index: curr, Text: MessageFirstStep}
		}
		next = curr - 1
	case IntentStart:
		next = 1
	case IntentRepeat:
	case IntentUnhandled:
		return Result{Index: curr}
	}

	return Result{
		Handled: true,
		Index:   next,
		Text:    StepText(recipe, next),
	}
}

// StepText formats step n of recipe for display.
func StepText(recipe *recipedb.Recipe, n int) string {
	step, ok := recipe.FindStep(n)
	if !ok {
		return MessageStepNotFound
	}
	return fmt.Sprintf("[Step %d/%d]: %s", n, len(recipe.Steps), step.DisplayText())
}
