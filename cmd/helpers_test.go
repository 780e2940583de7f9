package main

import (
	"math/rand"
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestVoyager(t *testing.T) *voyagerContext {
	t.Helper()

	cache, err := lru.New[string, []gazetteerPlace](16)
	require.NoError(t, err)

	v := &voyagerContext{
		randomSource: rand.New(rand.NewSource(1)),
		config: &searchConfig{
			Solr: searchConfigSolr{
				Host:     "http://solr.example.com",
				Core:     "voyager",
				Handler:  "select",
				GeoField: "geo",
			},
			Gazetteer: searchConfigGazetteer{
				Host:    "http://solr.example.com",
				Core:    "gazetteer",
				Handler: "select",
			},
			Search: searchConfigSearch{DefaultDateField: "modified"},
			Facets: []searchConfigFacet{
				{XID: "FacetFormat", Field: "format"},
				{XID: "FacetCountry", Field: "grp_Country"},
			},
		},
		translations: voyagerTranslations{bundle: i18n.NewBundle(language.English)},
	}

	v.gazetteer.cache = cache
	v.gazetteer.url = "http://solr.example.com/solr/gazetteer/select"

	v.maps.facetXIDs = make(map[string]string)
	v.maps.facetConfigs = make(map[string]searchConfigFacet)

	for _, facet := range v.config.Facets {
		v.maps.facetFields = append(v.maps.facetFields, facet.Field)
		v.maps.facetXIDs[facet.Field] = facet.XID
		v.maps.facetConfigs[facet.Field] = facet
	}

	return v
}

func newTestSearch(t *testing.T, v *voyagerContext) *searchContext {
	t.Helper()

	c := clientContext{}
	c.init(v, nil)

	s := searchContext{}
	s.init(v, &c)

	return &s
}
