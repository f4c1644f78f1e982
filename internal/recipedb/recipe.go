// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Ingredient represents an ingredient in a recipe. It is stored either as a
// plain string or as a structured record with a quantity, unit and name.
type Ingredient struct {
	// Text is the free-form ingredient line, set when the ingredient could not
	// be broken into parts.
	Text string

	// Qty is the quantity of the ingredient as free-form text, e.g. "1 1/2".
	Qty string

	// Unit is the unit of the quantity, e.g. "cups".
	Unit string

	// Name is the name of the ingredient.
	Name string
}

type ingredientRecord struct {
	Qty  json.RawMessage `json:"qty,omitempty"`
	Unit string          `json:"unit"`
	Name string          `json:"name"`
}

// Structured returns whether the ingredient is a {qty, unit, name} record.
func (i Ingredient) Structured() bool {
	return i.Qty != "" || i.Unit != "" || i.Name != ""
}

// String returns the ingredient as a single display line without a bullet.
func (i Ingredient) String() string {
	if !i.Structured() {
		return i.Text
	}
	return fmt.Sprintf("%s %s %s", i.Qty, i.Unit, i.Name)
}

func (i Ingredient) MarshalJSON() ([]byte, error) {
	if !i.Structured() {
		return marshalRaw(i.Text)
	}
	qty, err := marshalRaw(i.Qty)
	if err != nil {
		return nil, err
	}
	return marshalRaw(ingredientRecord{
		Qty:  qty,
		Unit: i.Unit,
		Name: i.Name,
	})
}

// marshalRaw encodes v without HTML escaping. Callers must also disable
// escaping on the outer encoder, which otherwise re-escapes the result.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("recipedb: encoding ingredient: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (i *Ingredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("recipedb: decoding ingredient text: %w", err)
		}
		*i = Ingredient{Text: text}
		return nil
	}

	var rec ingredientRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("recipedb: decoding ingredient record: %w", err)
	}
	qty, err := decodeQty(rec.Qty)
	if err != nil {
		return err
	}
	*i = Ingredient{
		Qty:  qty,
		Unit: rec.Unit,
		Name: rec.Name,
	}
	return nil
}

// decodeQty accepts a quantity written by hand as either a JSON string or a
// JSON number.
func decodeQty(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("recipedb: decoding ingredient qty: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("recipedb: decoding ingredient qty: %w", err)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return n.String(), nil
}

// Step represents a step in a recipe.
type Step struct {
	// Number is the 1-based position of the step. Steps are looked up by
	// number, not by their position in the list.
	Number int `json:"step_number"`

	// Text is the instruction for the step.
	Text string `json:"text,omitempty"`

	// Description is shown when Text is empty.
	Description string `json:"description,omitempty"`
}

// DisplayText returns the text to present for the step, preferring Text
// over Description.
func (s Step) DisplayText() string {
	if s.Text != "" {
		return s.Text
	}
	return s.Description
}

// Recipe represents a recipe stored as a JSON document.
type Recipe struct {
	// Title is the title of the recipe.
	Title string `json:"title"`

	// TotalTime is the total time to cook as free-form text.
	TotalTime string `json:"total_time"`

	// Yield is the serving size of the recipe as free-form text.
	Yield string `json:"yield"`

	// Ingredients are the ingredients of the recipe.
	Ingredients []Ingredient `json:"ingredients"`

	// Steps are the steps to prepare the recipe.
	Steps []Step `json:"steps"`
}

// FindStep returns the first step numbered n.
func (r *Recipe) FindStep(n int) (Step, bool) {
	for _, s := range r.Steps {
		if s.Number == n {
			return s, true
		}
	}
	return Step{}, false
}

// JSON returns the recipe serialized as indented, human-readable JSON with
// keys in a fixed order.
func (r *Recipe) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("recipedb: encoding recipe: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
