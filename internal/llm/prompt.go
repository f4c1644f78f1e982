// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const DefaultSystemPrompt = "You are a helpful cooking assistant."

// LoadSystemPrompt reads the system instruction from path. A missing or
// empty file falls back to DefaultSystemPrompt.
func LoadSystemPrompt(ctx context.Context, path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		slog.WarnContext(ctx, "llm: could not read system prompt, using default", "path", path, "error", err)
		return DefaultSystemPrompt
	}
	prompt := strings.TrimSpace(string(b))
	if prompt == "" {
		slog.WarnContext(ctx, "llm: system prompt is empty, using default", "path", path)
		return DefaultSystemPrompt
	}
	return prompt
}

func recipeContextPrompt(recipeJSON string) string {
	return fmt.Sprintf(recipeContext, recipeJSON)
}

const recipeContext = "Here is the recipe data I am cooking with:\n%s"

const recipeAcknowledgement = "Understood. I have the recipe data and am ready to help."

const unknownStep = "Unknown step"

const emptyAnswer = "I'm having trouble thinking right now."

func stepStatus(n int, text string) string {
	return fmt.Sprintf("User is currently on Step %d: %s", n, text)
}

func statusPart(status string) string {
	return "CURRENT STATUS: " + status
}

func questionPart(query string) string {
	return "USER QUESTION: " + query
}
