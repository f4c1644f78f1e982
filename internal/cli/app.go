// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/curioswitch/cookchat/stepchat/internal/display"
	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
	"github.com/curioswitch/cookchat/stepchat/internal/session"
)

var (
	yesAnswers = []string{"y", "yes", "sure", "yeah"}
	noAnswers  = []string{"n", "no", "nah", "nope"}
)

// RecipeSource produces a recipe from a URL.
type RecipeSource interface {
	Run(ctx context.Context, url string) (*recipedb.Recipe, error)
}

// Deps are the collaborators the app runs with.
type Deps struct {
	// Store holds the current recipe between runs.
	Store *recipedb.Store

	// Source scrapes new recipes.
	Source RecipeSource

	// Asker answers free-form questions while cooking.
	Asker session.Asker
}

// NewApp returns an App reading from in and writing to out.
func NewApp(in io.Reader, out *display.Printer) *App {
	return &App{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// App is the interactive cooking assistant.
type App struct {
	in  *bufio.Reader
	out *display.Printer
}

// Run asks for a recipe, summarizes it, and walks the user through it if
// they want to start cooking.
func (a *App) Run(ctx context.Context, deps Deps) error {
	recipe, err := a.startup(ctx, deps)
	if err != nil {
		return err
	}
	if recipe == nil {
		return nil
	}

	a.out.Slow("\nWould you like to start cooking?")
	a.out.Prompt(" y/n : ")
	answer := strings.ToLower(a.readLine())
	switch {
	case slices.Contains(yesAnswers, answer):
		return session.NewLoop(recipe, deps.Asker, a.in, a.out).Run(ctx)
	case slices.Contains(noAnswers, answer):
		a.out.Slow("Alright! Enjoy your cooking!")
	default:
		a.out.Line("Invalid input. Please enter 'y' or 'n'.")
	}
	return nil
}

func (a *App) startup(ctx context.Context, deps Deps) (*recipedb.Recipe, error) {
	a.out.Slow("What recipe would you like to cook today?")
	a.out.Prompt("\nEnter recipe url (or press Enter to use existing recipe.json): ")

	if url := a.readLine(); url != "" {
		a.out.Slow("\nGreat! Let's scrape and parse this delicious recipe!")
		a.out.Pause(display.DefaultPause)
		a.scrape(ctx, deps, url)
		a.out.Pause(3 * time.Second)
	}

	recipe, err := deps.Store.Load()
	if errors.Is(err, recipedb.ErrNotFound) {
		a.out.Slow("Error: No recipe.json found. Please provide a URL first.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.summarize(recipe)
	return recipe, nil
}

// scrape replaces the stored recipe with the one at url. Failures are
// reported and leave any previously stored recipe in place.
func (a *App) scrape(ctx context.Context, deps Deps, url string) {
	recipe, err := deps.Source.Run(ctx, url)
	if err != nil {
		slog.ErrorContext(ctx, "cli: scraping recipe", "url", url, "error", err)
		a.out.Line(fmt.Sprintf("Sorry, I couldn't read a recipe from that page: %v", err))
		return
	}
	if err := deps.Store.Save(recipe); err != nil {
		slog.ErrorContext(ctx, "cli: saving recipe", "path", deps.Store.Path(), "error", err)
		a.out.Line(fmt.Sprintf("Sorry, I couldn't save the recipe: %v", err))
		return
	}
	a.out.Slow("Scraping and parsing complete!")
}

func (a *App) summarize(recipe *recipedb.Recipe) {
	a.out.Slow("Let's see what we have!")
	a.out.WordsDelay(300*time.Millisecond, "\nRecipe Details:\n")
	a.out.Words("Title:", orUnknown(recipe.Title))
	a.out.Words("Total time:", orUnknown(recipe.TotalTime))
	a.out.Words("Yield:", orUnknown(recipe.Yield))

	a.out.Words("\nIngredients List:")
	for _, ingredient := range recipe.Ingredients {
		a.out.Line("- " + ingredient.String())
		a.out.Pause(50 * time.Millisecond)
	}
	a.out.Line("\n")
}

// readLine returns the next trimmed line of input, or "" once input ends.
func (a *App) readLine() string {
	line, _ := session.ReadLine(a.in)
	return line
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
