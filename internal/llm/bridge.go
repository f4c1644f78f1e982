// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
)

// NewBridge returns a Bridge asking questions of model. When reuseSession is
// set, one chat is established per recipe and reused for later questions;
// otherwise every question gets a freshly primed chat.
func NewBridge(model Model, conf ChatConfig, reuseSession bool) *Bridge {
	return &Bridge{
		model:        model,
		conf:         conf,
		reuseSession: reuseSession,
	}
}

// Bridge answers free-form cooking questions with a hosted model, grounding
// the model with the recipe and the step the user is on.
type Bridge struct {
	model        Model
	conf         ChatConfig
	reuseSession bool

	chat       Chat
	chatRecipe *recipedb.Recipe
}

// Ask answers query about recipe for a user currently on step curr. Failures
// from the model while answering are returned as displayable text. An error
// is only returned when a chat session could not be established.
func (b *Bridge) Ask(ctx context.Context, query string, recipe *recipedb.Recipe, curr int) (string, error) {
	stepText := unknownStep
	if step, ok := recipe.FindStep(curr); ok && strings.TrimSpace(step.DisplayText()) != "" {
		stepText = step.DisplayText()
	}

	chat, err := b.session(ctx, recipe)
	if err != nil {
		return "", err
	}

	answer, err := chat.Send(ctx, statusPart(stepStatus(curr, stepText)), questionPart(query))
	if err != nil {
		slog.ErrorContext(ctx, "llm: sending question", "provider", b.model.Name(), "error", err)
		return fmt.Sprintf("%s API Error: %v", b.model.Name(), err), nil
	}
	if answer == "" {
		return emptyAnswer, nil
	}
	return answer, nil
}

func (b *Bridge) session(ctx context.Context, recipe *recipedb.Recipe) (Chat, error) {
	if b.reuseSession && b.chat != nil && b.chatRecipe == recipe {
		return b.chat, nil
	}

	recipeJSON, err := recipe.JSON()
	if err != nil {
		return nil, fmt.Errorf("llm: serializing recipe: %w", err)
	}

	chat, err := b.model.StartChat(ctx, b.conf, []Turn{
		{Role: RoleUser, Text: recipeContextPrompt(recipeJSON)},
		{Role: RoleModel, Text: recipeAcknowledgement},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: starting %s chat: %w", b.model.Name(), err)
	}

	if b.reuseSession {
		b.chat = chat
		b.chatRecipe = recipe
	}
	return chat, nil
}
