// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import (
	"context"
	"fmt"
	"slices"

	"github.com/openai/openai-go/v3"
)

// NewOpenAIModel returns a Model backed by OpenAI chat completions.
func NewOpenAIModel(client *openai.Client, model string) *OpenAIModel {
	return &OpenAIModel{
		client: client,
		model:  model,
	}
}

// OpenAIModel starts chats with an OpenAI model. Chat completions are
// stateless so the chat history is kept client side.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

func (m *OpenAIModel) Name() string {
	return "OpenAI"
}

func (m *OpenAIModel) StartChat(_ context.Context, conf ChatConfig, history []Turn) (Chat, error) {
	return &openAIChat{
		client:      m.client,
		model:       m.model,
		temperature: float64(conf.Temperature),
		messages:    openAIHistory(conf.SystemInstruction, history),
	}, nil
}

type openAIChat struct {
	client      *openai.Client
	model       string
	temperature float64
	messages    []openai.ChatCompletionMessageParamUnion
}

func (c *openAIChat) Send(ctx context.Context, parts ...string) (string, error) {
	content := make([]openai.ChatCompletionContentPartUnionParam, len(parts))
	for i, p := range parts {
		content[i] = openai.TextContentPart(p)
	}
	messages := append(slices.Clip(c.messages), openai.UserMessage(content))

	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("llm: creating openai chat completion: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", nil
	}
	answer := res.Choices[0].Message.Content
	c.messages = append(messages, openai.AssistantMessage(answer))
	return answer, nil
}

func openAIHistory(system string, history []Turn) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(system))
	for _, turn := range history {
		if turn.Role == RoleModel {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}
	return messages
}
