// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package scrape turns a recipe URL into a structured recipe.
package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
)

// NewPipeline returns a Pipeline running scraper, parser and steps in order.
func NewPipeline(scraper Scraper, parser Parser, steps StepBuilder) *Pipeline {
	return &Pipeline{
		scraper: scraper,
		parser:  parser,
		steps:   steps,
	}
}

type Pipeline struct {
	scraper Scraper
	parser  Parser
	steps   StepBuilder
}

func (p *Pipeline) Run(ctx context.Context, url string) (*recipedb.Recipe, error) {
	page, err := p.scraper.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "scrape: fetched page", "url", page.URL, "status", page.StatusCode, "bytes", len(page.HTML))

	recipe, err := p.parser.Parse(page)
	if err != nil {
		return nil, fmt.Errorf("scrape: parsing %s: %w", page.URL, err)
	}

	recipe, err = p.steps.Normalize(recipe)
	if err != nil {
		return nil, fmt.Errorf("scrape: building steps for %s: %w", page.URL, err)
	}
	slog.DebugContext(ctx, "scrape: parsed recipe", "title", recipe.Title, "steps", len(recipe.Steps), "ingredients", len(recipe.Ingredients))
	return recipe, nil
}
