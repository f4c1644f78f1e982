// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"

	"github.com/curioswitch/cookchat/stepchat/internal/cli"
	"github.com/curioswitch/cookchat/stepchat/internal/config"
	"github.com/curioswitch/cookchat/stepchat/internal/llm"
	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
	"github.com/curioswitch/cookchat/stepchat/internal/scrape"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(cli.Main(&config.Config{}, conf, setupApp))
}

func setupApp(ctx context.Context, conf *config.Config, app *cli.App) error {
	model, err := newModel(ctx, conf)
	if err != nil {
		return err
	}

	bridge := llm.NewBridge(model, llm.ChatConfig{
		SystemInstruction: llm.LoadSystemPrompt(ctx, conf.LLM.PromptFile),
		Temperature:       conf.LLM.Temperature,
	}, conf.LLM.ReuseSession)

	pipeline := scrape.NewPipeline(
		scrape.NewCollyScraper(conf.Scrape.UserAgent),
		scrape.NewLDJSONParser(),
		scrape.NewStepNormalizer(),
	)

	if err := app.Run(ctx, cli.Deps{
		Store:  recipedb.NewStore(conf.Recipe.File),
		Source: pipeline,
		Asker:  bridge,
	}); err != nil {
		return fmt.Errorf("main: run app: %w", err)
	}
	return nil
}

func newModel(ctx context.Context, conf *config.Config) (llm.Model, error) {
	switch conf.LLM.Provider {
	case config.ProviderOpenAI:
		oai := openai.NewClient(option.WithAPIKey(conf.LLM.APIKey))
		return llm.NewOpenAIModel(&oai, conf.LLM.Model), nil
	default:
		genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  conf.LLM.APIKey,
			Backend: genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{
				APIVersion: conf.LLM.APIVersion,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("main: create genai client: %w", err)
		}
		return llm.NewGenAIModel(genAI, conf.LLM.Model), nil
	}
}
