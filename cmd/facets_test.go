package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFacetsFollowsKnownFieldOrder(t *testing.T) {
	raw := map[string][]interface{}{
		"grp_Country": {"United States", float64(120), "Canada", float64(4)},
		"format":      {"JPEG", float64(9)},
	}

	categories := parseFacets(raw, []string{"format", "grp_Country"}, nil)

	require.Len(t, categories, 2)
	assert.Equal(t, "format", categories[0].Field)
	assert.Equal(t, "grp_Country", categories[1].Field)
}

func TestParseFacetsOmitsAbsentAndUnknownFields(t *testing.T) {
	raw := map[string][]interface{}{
		"grp_Country": {"United States", float64(120)},
		"unlisted":    {"x", float64(1)},
	}

	categories := parseFacets(raw, []string{"format", "grp_Country"}, nil)

	require.Len(t, categories, 1)
	assert.Equal(t, "grp_Country", categories[0].Field)
}

func TestParseFacetsOmitsEmptyFields(t *testing.T) {
	raw := map[string][]interface{}{
		"format": {},
	}

	categories := parseFacets(raw, []string{"format"}, nil)

	assert.Empty(t, categories)
}

func TestParseFacetsSkipsOddTrailingElement(t *testing.T) {
	raw := map[string][]interface{}{
		"format": {"JPEG", float64(9), "PNG", float64(3), "dangler"},
	}

	categories := parseFacets(raw, []string{"format"}, nil)

	require.Len(t, categories, 1)
	require.Len(t, categories[0].Values, 2)
	assert.Equal(t, facetValue{Name: "JPEG", Count: 9}, categories[0].Values[0])
	assert.Equal(t, facetValue{Name: "PNG", Count: 3}, categories[0].Values[1])
}

func TestParseFacetsSkipsNonStringNames(t *testing.T) {
	raw := map[string][]interface{}{
		"format": {float64(7), float64(1), "JPEG", float64(9)},
	}

	categories := parseFacets(raw, []string{"format"}, nil)

	require.Len(t, categories, 1)
	require.Len(t, categories[0].Values, 1)
	assert.Equal(t, "JPEG", categories[0].Values[0].Name)
}

func TestParseFacetsSelectionStartsFalse(t *testing.T) {
	raw := map[string][]interface{}{
		"format": {"JPEG", float64(9)},
	}

	categories := parseFacets(raw, []string{"format"}, nil)

	require.Len(t, categories, 1)
	assert.False(t, categories[0].Values[0].Selected)
}

func TestParseFacetsDisplayNameFallback(t *testing.T) {
	raw := map[string][]interface{}{
		"format":      {"JPEG", float64(9)},
		"grp_Country": {"Canada", float64(4)},
	}

	displayName := func(field string) string {
		if field == "format" {
			return "Format"
		}
		return ""
	}

	categories := parseFacets(raw, []string{"format", "grp_Country"}, displayName)

	require.Len(t, categories, 2)
	assert.Equal(t, "Format", categories[0].DisplayName)
	assert.Equal(t, "grp_Country", categories[1].DisplayName)
}

func TestToggleFacetValue(t *testing.T) {
	categories := []facetCategory{
		{Field: "format", Values: []facetValue{{Name: "JPEG", Count: 9}}},
	}

	assert.True(t, toggleFacetValue(categories, "format", "JPEG"))
	assert.True(t, categories[0].Values[0].Selected)

	assert.True(t, toggleFacetValue(categories, "format", "JPEG"))
	assert.False(t, categories[0].Values[0].Selected)

	assert.False(t, toggleFacetValue(categories, "format", "PNG"))
	assert.False(t, toggleFacetValue(categories, "nope", "JPEG"))
}

func TestBuildFacetFilter(t *testing.T) {
	categories := []facetCategory{
		{Field: "format", Values: []facetValue{
			{Name: "JPEG", Selected: true},
			{Name: "PNG", Selected: true},
			{Name: "GIF", Selected: false},
		}},
		{Field: "grp_Country", Values: []facetValue{
			{Name: "Canada", Selected: false},
		}},
		{Field: "source", Values: []facetValue{
			{Name: "landsat", Selected: true},
		}},
	}

	fragment := buildFacetFilter(categories)

	assert.Equal(t, `format:("JPEG" OR "PNG") AND source:("landsat")`, fragment)
}

func TestBuildFacetFilterNoSelections(t *testing.T) {
	categories := []facetCategory{
		{Field: "format", Values: []facetValue{{Name: "JPEG"}}},
	}

	assert.Equal(t, "", buildFacetFilter(categories))
	assert.Equal(t, "", buildFacetFilter(nil))
}
