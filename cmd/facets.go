package main

import (
	"fmt"
	"strings"
)

type facetValue struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

type facetCategory struct {
	Field       string       `json:"field"`
	DisplayName string       `json:"display_name"`
	Values      []facetValue `json:"values"`
	IsOpen      bool         `json:"is_open"`
}

// facetCount coerces the count half of a facet pair.  classic faceting
// counts arrive as json numbers (float64); mapstructure may hand through
// other numeric types.
func facetCount(val interface{}) (int, bool) {
	switch n := val.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}

	return 0, false
}

// parseFacets decodes Solr's interleaved [name, count, name, count, ...]
// facet_fields arrays into categories.  output order follows knownFields,
// not the response, so the client's facet panel keeps a steady layout
// across queries.  fields with no decoded values are omitted; a trailing
// name missing its count is skipped; selection state always starts false.
func parseFacets(raw map[string][]interface{}, knownFields []string, displayName func(string) string) []facetCategory {
	var categories []facetCategory

	for _, field := range knownFields {
		pairs := raw[field]

		var values []facetValue

		for i := 0; i+1 < len(pairs); i += 2 {
			name, ok := pairs[i].(string)
			if ok == false {
				continue
			}

			count, ok := facetCount(pairs[i+1])
			if ok == false {
				continue
			}

			values = append(values, facetValue{Name: name, Count: count})
		}

		if len(values) == 0 {
			continue
		}

		label := field
		if displayName != nil {
			if mapped := displayName(field); mapped != "" {
				label = mapped
			}
		}

		categories = append(categories, facetCategory{Field: field, DisplayName: label, Values: values})
	}

	return categories
}

// toggleFacetValue flips the selection state of one value, returning false
// if the field/value pair is unknown.
func toggleFacetValue(categories []facetCategory, field string, name string) bool {
	for i := range categories {
		if categories[i].Field != field {
			continue
		}

		for j := range categories[i].Values {
			if categories[i].Values[j].Name == name {
				categories[i].Values[j].Selected = !categories[i].Values[j].Selected
				return true
			}
		}
	}

	return false
}

// buildFacetFilter re-encodes selected facet values as a Solr filter
// fragment: field:("v1" OR "v2") per category, categories joined with AND.
// categories with no selections contribute nothing; the empty string means
// no filtering.
func buildFacetFilter(categories []facetCategory) string {
	var clauses []string

	for _, category := range categories {
		var selected []string

		for _, value := range category.Values {
			if value.Selected == true {
				selected = append(selected, fmt.Sprintf(`"%s"`, value.Name))
			}
		}

		if len(selected) == 0 {
			continue
		}

		clauses = append(clauses, fmt.Sprintf(`%s:(%s)`, category.Field, strings.Join(selected, " OR ")))
	}

	return strings.Join(clauses, " AND ")
}
