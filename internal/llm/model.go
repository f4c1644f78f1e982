// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"context"
)

// Role is the author of a turn in a chat history.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message in a chat history.
type Turn struct {
	Role Role
	Text string
}

// ChatConfig configures a chat session.
type ChatConfig struct {
	// SystemInstruction governs the model for the whole session.
	SystemInstruction string

	// Temperature is the sampling temperature.
	Temperature float32
}

// Chat is an established chat session with a model.
type Chat interface {
	// Send sends a single user message made of the given text parts and
	// returns the text of the reply.
	Send(ctx context.Context, parts ...string) (string, error)
}

// Model starts chat sessions with a hosted model.
type Model interface {
	// Name is the provider name used in diagnostics, e.g. "Gemini".
	Name() string

	// StartChat establishes a chat seeded with history.
	StartChat(ctx context.Context, conf ChatConfig, history []Turn) (Chat, error)
}
