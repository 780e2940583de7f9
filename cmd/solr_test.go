package main

import (
	"encoding/json"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const sampleSolrBody = `{
	"responseHeader": {"status": 0, "QTime": 12},
	"response": {
		"numFound": 2,
		"start": 0,
		"maxScore": 1.5,
		"docs": [{"id": "a"}, {"id": "b"}]
	},
	"facet_counts": {
		"facet_queries": {},
		"facet_fields": {
			"format": ["JPEG", 9, "PNG", 3],
			"grp_Country": ["United States", 120]
		}
	}
}`

func TestConvertFacetCounts(t *testing.T) {
	v := newTestVoyager(t)
	s := newTestSearch(t, v)

	var solrRes solrResponse
	require.NoError(t, json.Unmarshal([]byte(sampleSolrBody), &solrRes))

	s.solrRes = &solrRes

	require.NoError(t, s.convertFacetCounts())

	fields := s.solrRes.FacetCounts.FacetFields
	require.Len(t, fields, 2)
	assert.Len(t, fields["format"], 4)
	assert.Len(t, fields["grp_Country"], 2)
}

func TestParsedFacetsFromSolrResponse(t *testing.T) {
	v := newTestVoyager(t)
	s := newTestSearch(t, v)

	var solrRes solrResponse
	require.NoError(t, json.Unmarshal([]byte(sampleSolrBody), &solrRes))

	s.solrRes = &solrRes
	require.NoError(t, s.convertFacetCounts())

	categories := s.parsedFacets()

	require.Len(t, categories, 2)
	assert.Equal(t, "format", categories[0].Field)
	assert.Equal(t, "grp_Country", categories[1].Field)
	assert.Equal(t, 9, categories[0].Values[0].Count)
}

func TestFacetDisplayNameLocalization(t *testing.T) {
	v := newTestVoyager(t)

	err := v.translations.bundle.AddMessages(language.English, &i18n.Message{ID: "FacetFormat", Other: "Format"})
	require.NoError(t, err)

	s := newTestSearch(t, v)

	// translated when a message exists, raw field otherwise
	assert.Equal(t, "Format", s.facetDisplayName("format"))
	assert.Equal(t, "grp_Country", s.facetDisplayName("grp_Country"))
	assert.Equal(t, "unmapped", s.facetDisplayName("unmapped"))
}

func TestSolrRequestValues(t *testing.T) {
	r := solrRequest{
		params: solrRequestParams{
			Q:             "earthquake",
			Fq:            []string{`format:("JPEG")`, "modified:[* TO 2024-01-01T00:00:00.000Z]"},
			Start:         10,
			Rows:          25,
			Bbox:          "-122.5000,37.7000,-122.3000,37.9000",
			FacetFields:   []string{"format", "grp_Country"},
			FacetMinCount: 1,
		},
	}

	params := r.values()

	assert.Equal(t, "earthquake", params.Get("q"))
	assert.Equal(t, "10", params.Get("start"))
	assert.Equal(t, "25", params.Get("rows"))
	assert.Equal(t, "json", params.Get("wt"))
	assert.Equal(t, "-122.5000,37.7000,-122.3000,37.9000", params.Get("bbox"))
	assert.Equal(t, "true", params.Get("facet"))
	assert.Equal(t, []string{"format", "grp_Country"}, params["facet.field"])
	assert.Len(t, params["fq"], 2)
}
