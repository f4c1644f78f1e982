// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// NewGenAIModel returns a Model backed by Gemini chats.
func NewGenAIModel(client *genai.Client, model string) *GenAIModel {
	return &GenAIModel{
		client: client,
		model:  model,
	}
}

// GenAIModel starts chats with a Gemini model.
type GenAIModel struct {
	client *genai.Client
	model  string
}

func (m *GenAIModel) Name() string {
	return "Gemini"
}

func (m *GenAIModel) StartChat(ctx context.Context, conf ChatConfig, history []Turn) (Chat, error) {
	chat, err := m.client.Chats.Create(ctx, m.model, genAIConfig(conf), genAIHistory(history))
	if err != nil {
		return nil, fmt.Errorf("llm: creating genai chat: %w", err)
	}
	return &genAIChat{chat: chat}, nil
}

type genAIChat struct {
	chat *genai.Chat
}

func (c *genAIChat) Send(ctx context.Context, parts ...string) (string, error) {
	res, err := c.chat.SendMessage(ctx, genAIParts(parts)...)
	if err != nil {
		return "", fmt.Errorf("llm: sending genai message: %w", err)
	}
	return res.Text(), nil
}

func genAIConfig(conf ChatConfig) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{
					Text: conf.SystemInstruction,
				},
			},
		},
		Temperature: genai.Ptr(conf.Temperature),
	}
}

func genAIHistory(history []Turn) []*genai.Content {
	contents := make([]*genai.Content, len(history))
	for i, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == RoleModel {
			role = genai.RoleModel
		}
		contents[i] = genai.NewContentFromText(turn.Text, role)
	}
	return contents
}

func genAIParts(parts []string) []genai.Part {
	res := make([]genai.Part, len(parts))
	for i, p := range parts {
		res[i] = genai.Part{Text: p}
	}
	return res
}
