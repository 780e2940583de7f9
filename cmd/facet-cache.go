package main

import (
	"errors"
	"log"
	"sync"
	"time"
)

// facetCache keeps baseline facet counts for the match-all query warm so the
// client can render its filter panel before the first search runs.
type facetCache struct {
	searchCtx       *searchContext
	refreshInterval int
	mu              sync.RWMutex
	currentFacets   []facetCategory
}

func newFacetCache(v *voyagerContext, interval int) *facetCache {
	f := facetCache{
		refreshInterval: interval,
	}

	// create an internal search context for the match-all facet query

	c := clientContext{}
	c.init(v, nil)

	s := searchContext{}
	s.init(v, &c)

	s.req = SearchRequest{Query: "*:*", Pagination: Pagination{Start: 0, Rows: 0}}
	s.requestFacets = true

	f.searchCtx = &s

	go f.monitorFacets()

	return &f
}

func (f *facetCache) monitorFacets() {
	for {
		f.refreshFacets()
		f.searchCtx.log("[CACHE] refresh scheduled in %d seconds", f.refreshInterval)
		time.Sleep(time.Duration(f.refreshInterval) * time.Second)
	}
}

func (f *facetCache) refreshFacets() {
	log.Printf("[CACHE] refreshing baseline facets...")

	if resp := f.searchCtx.performQuery(); resp.err != nil {
		f.searchCtx.err("[CACHE] query error: %s", resp.err.Error())
		return
	}

	facets := f.searchCtx.parsedFacets()

	f.mu.Lock()
	f.currentFacets = facets
	f.mu.Unlock()
}

// baselineFacets returns a snapshot of the most recently cached facet
// categories.
func (f *facetCache) baselineFacets() ([]facetCategory, error) {
	f.mu.RLock()
	current := f.currentFacets
	f.mu.RUnlock()

	if current == nil {
		return nil, errors.New("facets have not been cached yet")
	}

	facets := make([]facetCategory, len(current))
	copy(facets, current)

	return facets, nil
}
