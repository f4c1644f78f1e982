// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
)

// ErrNoRecipe is returned when a page does not contain a recognizable recipe.
var ErrNoRecipe = errors.New("scrape: no recipe found on page")

// Parser extracts a recipe from a fetched page.
type Parser interface {
	Parse(page *RawPage) (*recipedb.Recipe, error)
}

// LDJSONParser reads schema.org Recipe metadata embedded as JSON-LD, falling
// back to common recipe markup when a page has none.
type LDJSONParser struct{}

func NewLDJSONParser() *LDJSONParser {
	return &LDJSONParser{}
}

// recipeSchema holds the raw Recipe properties. Publishers disagree on the
// shape of nearly every property so each is decoded leniently.
type recipeSchema struct {
	Name               json.RawMessage `json:"name"`
	TotalTime          json.RawMessage `json:"totalTime"`
	RecipeYield        json.RawMessage `json:"recipeYield"`
	RecipeIngredient   json.RawMessage `json:"recipeIngredient"`
	RecipeInstructions json.RawMessage `json:"recipeInstructions"`
}

func (p *LDJSONParser) Parse(page *RawPage) (*recipedb.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("scrape: parsing html: %w", err)
	}

	var schema *recipeSchema
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var block any
		if err := json.Unmarshal([]byte(s.Text()), &block); err != nil {
			// Malformed blocks are common on recipe sites, keep looking.
			return true
		}
		schema = findRecipe(block)
		return schema == nil
	})

	if schema != nil {
		return fromSchema(schema)
	}
	return fromMarkup(doc)
}

// findRecipe walks a decoded JSON-LD value for the first Recipe object,
// looking through arrays and @graph containers.
func findRecipe(v any) *recipeSchema {
	switch v := v.(type) {
	case []any:
		for _, item := range v {
			if r := findRecipe(item); r != nil {
				return r
			}
		}
	case map[string]any:
		if isType(v["@type"], "Recipe") {
			b, err := json.Marshal(v)
			if err != nil {
				return nil
			}
			var r recipeSchema
			if err := json.Unmarshal(b, &r); err != nil {
				return nil
			}
			return &r
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipe(graph)
		}
	}
	return nil
}

func isType(v any, name string) bool {
	switch v := v.(type) {
	case string:
		return v == name
	case []any:
		for _, t := range v {
			if s, ok := t.(string); ok && s == name {
				return true
			}
		}
	}
	return false
}

func fromSchema(schema *recipeSchema) (*recipedb.Recipe, error) {
	recipe := &recipedb.Recipe{
		Title:     firstText(schema.Name),
		TotalTime: formatDuration(firstText(schema.TotalTime)),
		Yield:     parseYield(schema.RecipeYield),
	}

	for _, ingredient := range textList(schema.RecipeIngredient) {
		recipe.Ingredients = append(recipe.Ingredients, recipedb.Ingredient{Text: ingredient})
	}

	var instructions any
	if len(schema.RecipeInstructions) > 0 {
		if err := json.Unmarshal(schema.RecipeInstructions, &instructions); err != nil {
			return nil, fmt.Errorf("scrape: decoding recipe instructions: %w", err)
		}
	}
	for i, text := range flattenInstructions(instructions) {
		recipe.Steps = append(recipe.Steps, recipedb.Step{
			Number: i + 1,
			Text:   text,
		})
	}

	return recipe, nil
}

// flattenInstructions accepts the shapes recipeInstructions takes in the
// wild: a single string, a list of strings, HowToStep objects, and
// HowToSection objects grouping steps.
func flattenInstructions(v any) []string {
	var steps []string
	switch v := v.(type) {
	case string:
		for _, line := range strings.Split(v, "\n") {
			if line = cleanText(line); line != "" {
				steps = append(steps, line)
			}
		}
	case []any:
		for _, item := range v {
			steps = append(steps, flattenInstructions(item)...)
		}
	case map[string]any:
		if items, ok := v["itemListElement"]; ok {
			return flattenInstructions(items)
		}
		text, _ := v["text"].(string)
		if text == "" {
			text, _ = v["name"].(string)
		}
		if text = cleanText(text); text != "" {
			steps = append(steps, text)
		}
	}
	return steps
}

func decodeRaw(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// scalarText renders a JSON string or number as cleaned text.
func scalarText(v any) string {
	switch v := v.(type) {
	case string:
		return cleanText(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// firstText returns a string or number property, or the first non-empty one
// when the property is a list.
func firstText(raw json.RawMessage) string {
	switch v := decodeRaw(raw).(type) {
	case []any:
		for _, item := range v {
			if s := scalarText(item); s != "" {
				return s
			}
		}
		return ""
	default:
		return scalarText(v)
	}
}

// textList returns the non-empty entries of a list property. A lone string
// is treated as a newline-separated list.
func textList(raw json.RawMessage) []string {
	var items []string
	switch v := decodeRaw(raw).(type) {
	case string:
		for _, line := range strings.Split(v, "\n") {
			if line = cleanText(line); line != "" {
				items = append(items, line)
			}
		}
	case []any:
		for _, item := range v {
			if s := scalarText(item); s != "" {
				items = append(items, s)
			}
		}
	default:
		if s := scalarText(v); s != "" {
			items = append(items, s)
		}
	}
	return items
}

func parseYield(raw json.RawMessage) string {
	switch v := decodeRaw(raw).(type) {
	case []any:
		// Sites often list a bare count followed by a descriptive form such as
		// ["4", "4 servings"], prefer the descriptive one.
		var yield string
		for _, item := range v {
			if s := scalarText(item); len(s) > len(yield) {
				yield = s
			}
		}
		return yield
	default:
		return scalarText(v)
	}
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// formatDuration renders an ISO 8601 duration such as PT1H30M as
// "1 hr 30 mins". Values that are not ISO durations are returned trimmed.
func formatDuration(s string) string {
	s = strings.TrimSpace(s)
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return s
	}

	units := []struct {
		value string
		one   string
		many  string
	}{
		{m[1], "day", "days"},
		{m[2], "hr", "hrs"},
		{m[3], "min", "mins"},
	}
	var parts []string
	for _, u := range units {
		n, _ := strconv.Atoi(u.value)
		switch {
		case n == 1:
			parts = append(parts, "1 "+u.one)
		case n > 1:
			parts = append(parts, strconv.Itoa(n)+" "+u.many)
		}
	}
	if len(parts) == 0 {
		if n, _ := strconv.Atoi(m[4]); n > 0 {
			return strconv.Itoa(n) + " secs"
		}
		return ""
	}
	return strings.Join(parts, " ")
}

func fromMarkup(doc *goquery.Document) (*recipedb.Recipe, error) {
	recipe := &recipedb.Recipe{
		Title: cleanText(doc.Find("h1").First().Text()),
	}

	doc.Find(`[class*="ingredient"] li`).Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			recipe.Ingredients = append(recipe.Ingredients, recipedb.Ingredient{Text: text})
		}
	})

	doc.Find(`[class*="instruction"] li, [class*="direction"] li`).Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			recipe.Steps = append(recipe.Steps, recipedb.Step{
				Number: len(recipe.Steps) + 1,
				Text:   text,
			})
		}
	})

	if len(recipe.Ingredients) == 0 && len(recipe.Steps) == 0 {
		return nil, ErrNoRecipe
	}
	return recipe, nil
}

// cleanText unescapes HTML entities left in scraped text and collapses
// whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
