// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"errors"
	"regexp"
	"strings"

	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
)

// ErrNoSteps is returned when a parsed recipe has no usable steps.
var ErrNoSteps = errors.New("scrape: recipe has no steps")

// StepBuilder prepares a parsed recipe for stepping through.
type StepBuilder interface {
	Normalize(recipe *recipedb.Recipe) (*recipedb.Recipe, error)
}

// NewStepNormalizer returns the default StepBuilder.
func NewStepNormalizer() *StepNormalizer {
	return &StepNormalizer{}
}

// StepNormalizer numbers steps 1..N in order and splits ingredient lines
// into quantity, unit and name where it can.
type StepNormalizer struct{}

func (n *StepNormalizer) Normalize(recipe *recipedb.Recipe) (*recipedb.Recipe, error) {
	res := &recipedb.Recipe{
		Title:     strings.TrimSpace(recipe.Title),
		TotalTime: strings.TrimSpace(recipe.TotalTime),
		Yield:     strings.TrimSpace(recipe.Yield),
	}

	for _, ingredient := range recipe.Ingredients {
		if ingredient.Structured() {
			res.Ingredients = append(res.Ingredients, ingredient)
			continue
		}
		text := strings.TrimSpace(ingredient.Text)
		if text == "" {
			continue
		}
		res.Ingredients = append(res.Ingredients, SplitIngredient(text))
	}

	for _, step := range recipe.Steps {
		text := strings.TrimSpace(step.Text)
		description := strings.TrimSpace(step.Description)
		if text == "" && description == "" {
			continue
		}
		res.Steps = append(res.Steps, recipedb.Step{
			Number:      len(res.Steps) + 1,
			Text:        text,
			Description: description,
		})
	}

	if len(res.Steps) == 0 {
		return nil, ErrNoSteps
	}
	return res, nil
}

const quantityPattern = `(?:\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?\s*[¼½¾⅓⅔⅛]?|[¼½¾⅓⅔⅛])(?:\s*(?:-|to)\s*(?:\d+/\d+|\d+(?:\.\d+)?))?`

var units = []string{
	"cups", "cup", "c",
	"tablespoons", "tablespoon", "tbsp", "tbs", "T",
	"teaspoons", "teaspoon", "tsp", "t",
	"fluid ounces", "fl oz", "ounces", "ounce", "oz",
	"pounds", "pound", "lbs", "lb",
	"grams", "gram", "g", "kilograms", "kilogram", "kg",
	"milliliters", "millilitres", "ml", "liters", "litres", "l",
	"pints", "pint", "quarts", "quart", "gallons", "gallon",
	"cloves", "clove", "cans", "can", "packages", "package", "sticks", "stick",
	"slices", "slice", "pinches", "pinch", "dashes", "dash",
}

var ingredientLine = regexp.MustCompile(`^(` + quantityPattern + `)\s*(?:(` + strings.Join(units, "|") + `)\.?\s+)?(.+)$`)

// SplitIngredient breaks a line such as "1 1/2 cups flour" into its parts.
// Lines that don't start with a quantity are returned as plain text.
func SplitIngredient(line string) recipedb.Ingredient {
	m := ingredientLine.FindStringSubmatch(line)
	if m == nil {
		return recipedb.Ingredient{Text: line}
	}
	name := strings.TrimSpace(m[3])
	if name == "" {
		return recipedb.Ingredient{Text: line}
	}
	return recipedb.Ingredient{
		Qty:  strings.TrimSpace(m[1]),
		Unit: m[2],
		Name: name,
	}
}
