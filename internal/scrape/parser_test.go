// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/curioswitch/cookchat/stepchat/internal/recipedb"
)

const graphPage = `<html><head>
<script type="application/ld+json">{not valid json</script>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebSite", "name": "Example Kitchen"},
    {
      "@type": ["Recipe", "NewsArticle"],
      "name": "Tomato &amp; Basil Soup",
      "totalTime": "PT1H5M",
      "recipeYield": ["4", "4 servings"],
      "recipeIngredient": ["2 cups  tomatoes", "Salt to taste"],
      "recipeInstructions": [
        {
          "@type": "HowToSection",
          "name": "Prep",
          "itemListElement": [
            {"@type": "HowToStep", "text": "Chop the tomatoes."},
            {"@type": "HowToStep", "name": "Tear the basil."}
          ]
        },
        {"@type": "HowToStep", "text": "Simmer for 20 minutes."},
        "Season and serve."
      ]
    }
  ]
}
</script></head><body><h1>Ignored title</h1></body></html>`

func TestParseGraph(t *testing.T) {
	got, err := NewLDJSONParser().Parse(&RawPage{HTML: []byte(graphPage)})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &recipedb.Recipe{
		Title:     "Tomato & Basil Soup",
		TotalTime: "1 hr 5 mins",
		Yield:     "4 servings",
		Ingredients: []recipedb.Ingredient{
			{Text: "2 cups tomatoes"},
			{Text: "Salt to taste"},
		},
		Steps: []recipedb.Step{
			{Number: 1, Text: "Chop the tomatoes."},
			{Number: 2, Text: "Tear the basil."},
			{Number: 3, Text: "Simmer for 20 minutes."},
			{Number: 4, Text: "Season and serve."},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected recipe (-want +got):\n%s", diff)
	}
}

func TestParseTopLevelRecipe(t *testing.T) {
	page := `<script type="application/ld+json">
[{"@type": "Organization"}, {
  "@type": "Recipe",
  "name": "Toast",
  "recipeYield": 2,
  "recipeIngredient": ["2 slices bread"],
  "recipeInstructions": "Toast the bread.\n\nButter it."
}]</script>`
	got, err := NewLDJSONParser().Parse(&RawPage{HTML: []byte(page)})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &recipedb.Recipe{
		Title:       "Toast",
		Yield:       "2",
		Ingredients: []recipedb.Ingredient{{Text: "2 slices bread"}},
		Steps: []recipedb.Step{
			{Number: 1, Text: "Toast the bread."},
			{Number: 2, Text: "Butter it."},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected recipe (-want +got):\n%s", diff)
	}
}

func TestParseLenientProperties(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *recipedb.Recipe
	}{
		{
			name: "single ingredient string",
			body: `"name": "Toast", "recipeIngredient": "1 slice bread"`,
			want: &recipedb.Recipe{
				Title:       "Toast",
				Ingredients: []recipedb.Ingredient{{Text: "1 slice bread"}},
			},
		},
		{
			name: "newline separated ingredients",
			body: `"name": "Toast", "recipeIngredient": "1 slice bread\nbutter\n"`,
			want: &recipedb.Recipe{
				Title:       "Toast",
				Ingredients: []recipedb.Ingredient{{Text: "1 slice bread"}, {Text: "butter"}},
			},
		},
		{
			name: "mixed ingredient list",
			body: `"name": "Toast", "recipeIngredient": ["1 slice bread", 2, null, ""]`,
			want: &recipedb.Recipe{
				Title:       "Toast",
				Ingredients: []recipedb.Ingredient{{Text: "1 slice bread"}, {Text: "2"}},
			},
		},
		{
			name: "name and time lists",
			body: `"name": ["", "Toast", "Hot toast"], "totalTime": ["PT5M"], "recipeIngredient": ["1 slice bread"]`,
			want: &recipedb.Recipe{
				Title:       "Toast",
				TotalTime:   "5 mins",
				Ingredients: []recipedb.Ingredient{{Text: "1 slice bread"}},
			},
		},
		{
			name: "numeric name",
			body: `"name": 1905, "recipeIngredient": ["1 slice bread"]`,
			want: &recipedb.Recipe{
				Title:       "1905",
				Ingredients: []recipedb.Ingredient{{Text: "1 slice bread"}},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page := `<script type="application/ld+json">{"@type": "Recipe", ` + tc.body +
				`, "recipeInstructions": [{"@type": "HowToStep", "text": "Toast the bread."}]}</script>`
			got, err := NewLDJSONParser().Parse(&RawPage{HTML: []byte(page)})
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tc.want.Steps = []recipedb.Step{{Number: 1, Text: "Toast the bread."}}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected recipe (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMarkupFallback(t *testing.T) {
	page := `<html><body>
<h1> Grandma's   Cookies </h1>
<div class="recipe-ingredients"><ul><li>1 cup butter</li><li> </li><li>2 eggs</li></ul></div>
<section class="recipe-directions"><ol><li>Cream the butter.</li><li>Add the eggs.</li></ol></section>
</body></html>`
	got, err := NewLDJSONParser().Parse(&RawPage{HTML: []byte(page)})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &recipedb.Recipe{
		Title: "Grandma's Cookies",
		Ingredients: []recipedb.Ingredient{
			{Text: "1 cup butter"},
			{Text: "2 eggs"},
		},
		Steps: []recipedb.Step{
			{Number: 1, Text: "Cream the butter."},
			{Number: 2, Text: "Add the eggs."},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected recipe (-want +got):\n%s", diff)
	}
}

func TestParseNoRecipe(t *testing.T) {
	_, err := NewLDJSONParser().Parse(&RawPage{HTML: []byte(`<html><body><h1>About us</h1></body></html>`)})
	if !errors.Is(err, ErrNoRecipe) {
		t.Errorf("got %v, want ErrNoRecipe", err)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PT30M", "30 mins"},
		{"PT1H", "1 hr"},
		{"PT2H1M", "2 hrs 1 min"},
		{"P1DT12H", "1 day 12 hrs"},
		{"PT45S", "45 secs"},
		{"PT0M", ""},
		{" 25 minutes ", "25 minutes"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := formatDuration(tc.in); got != tc.want {
				t.Errorf("formatDuration(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
