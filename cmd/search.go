package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type searchContext struct {
	voyager       *voyagerContext
	client        *clientContext
	req           SearchRequest
	solrClient    *http.Client // points to appropriate http client
	solrReq       *solrRequest
	solrRes       *solrResponse
	requestFacets bool
}

type searchResponse struct {
	status int         // http status code
	data   interface{} // data to return as JSON
	err    error       // error, if any
}

func (s *searchContext) init(v *voyagerContext, c *clientContext) {
	s.voyager = v
	s.client = c
	s.solrClient = v.solr.client
}

func (s *searchContext) log(format string, args ...interface{}) {
	s.client.log(format, args...)
}

func (s *searchContext) err(format string, args ...interface{}) {
	s.client.err(format, args...)
}

// facetDisplayName localizes a facet field's label, falling back to the raw
// field identifier when no mapping or translation exists.
func (s *searchContext) facetDisplayName(field string) string {
	xid := s.voyager.maps.facetXIDs[field]

	if xid == "" {
		return field
	}

	if label := s.client.localize(xid); label != "" {
		return label
	}

	return field
}

func (s *searchContext) validateSearchRequest() error {
	// quick validations we can do up front: every requested filter field
	// must be one of the configured facet fields

	for _, filter := range s.req.Filters {
		if _, ok := s.voyager.maps.facetConfigs[filter.Field]; ok == false {
			return fmt.Errorf("received unrecognized filter field: [%s]", filter.Field)
		}
	}

	if s.req.Location != nil {
		switch s.req.Location.Type {
		case filterBox, filterPoint, filterPolygon:

		default:
			return fmt.Errorf("received unrecognized location type: [%s]", s.req.Location.Type)
		}
	}

	return nil
}

func (s *searchContext) performQuery() searchResponse {
	s.log("**********  START SOLR QUERY  **********")

	resp := s.buildSolrRequest()

	if resp.err == nil {
		if err := s.solrQuery(); err != nil {
			s.err("query execution error: %s", err.Error())
			resp = searchResponse{status: http.StatusInternalServerError, err: err}
		}
	} else {
		s.err("query creation error: %s", resp.err.Error())
	}

	s.log("**********   END SOLR QUERY   **********")

	return resp
}

func (s *searchContext) parsedFacets() []facetCategory {
	return parseFacets(s.solrRes.FacetCounts.FacetFields, s.voyager.maps.facetFields, s.facetDisplayName)
}

func (s *searchContext) buildSearchResult() *SearchResult {
	result := SearchResult{
		StatusCode: http.StatusOK,
		Pagination: SearchPagination{
			Start: s.solrRes.meta.start,
			Rows:  s.solrRes.meta.numRecords,
			Total: s.solrRes.meta.totalRecords,
		},
		Docs:      s.solrRes.Response.Docs,
		Warnings:  s.solrReq.meta.warnings,
		ElapsedMS: int64(time.Since(s.client.start) / time.Millisecond),
	}

	if result.Docs == nil {
		result.Docs = []solrDocument{}
	}

	if s.requestFacets == true {
		result.Facets = s.parsedFacets()
	}

	return &result
}

func (s *searchContext) handleSearchRequest(c *gin.Context) searchResponse {
	if err := c.BindJSON(&s.req); err != nil {
		return searchResponse{status: http.StatusBadRequest, err: err, data: SearchResult{StatusCode: http.StatusBadRequest, StatusMessage: err.Error()}}
	}

	s.log("[SEARCH] query: [%s]", s.req.Query)

	if err := s.validateSearchRequest(); err != nil {
		return searchResponse{status: http.StatusBadRequest, err: err, data: SearchResult{StatusCode: http.StatusBadRequest, StatusMessage: err.Error()}}
	}

	s.requestFacets = true

	if resp := s.performQuery(); resp.err != nil {
		resp.data = SearchResult{StatusCode: resp.status, StatusMessage: resp.err.Error()}
		return resp
	}

	return searchResponse{status: http.StatusOK, data: s.buildSearchResult()}
}

func (s *searchContext) handleFacetsRequest(c *gin.Context) searchResponse {
	if err := c.BindJSON(&s.req); err != nil {
		return searchResponse{status: http.StatusBadRequest, err: err, data: FacetsResult{StatusCode: http.StatusBadRequest, StatusMessage: err.Error()}}
	}

	s.log("[FACETS] query: [%s]", s.req.Query)

	if err := s.validateSearchRequest(); err != nil {
		return searchResponse{status: http.StatusBadRequest, err: err, data: FacetsResult{StatusCode: http.StatusBadRequest, StatusMessage: err.Error()}}
	}

	// facet requests are only interested in buckets, not records
	s.req.Pagination = Pagination{Start: 0, Rows: 0}
	s.requestFacets = true

	if resp := s.performQuery(); resp.err != nil {
		resp.data = FacetsResult{StatusCode: resp.status, StatusMessage: resp.err.Error()}
		return resp
	}

	facets := s.parsedFacets()
	if facets == nil {
		facets = []facetCategory{}
	}

	result := FacetsResult{
		StatusCode: http.StatusOK,
		Facets:     facets,
		ElapsedMS:  int64(time.Since(s.client.start) / time.Millisecond),
	}

	return searchResponse{status: http.StatusOK, data: result}
}

func (s *searchContext) handleGazetteerRequest(names []string) searchResponse {
	// an empty name list is a client error at the API boundary
	if len(names) == 0 {
		return searchResponse{status: http.StatusBadRequest, err: fmt.Errorf("missing name parameter(s)")}
	}

	places := s.queryGazetteer(names)

	return searchResponse{status: http.StatusOK, data: GazetteerResult{Places: places}}
}

func (s *searchContext) handlePingRequest() searchResponse {
	s.solrClient = s.voyager.solr.healthcheckClient

	// we are not interested in records, just connectivity
	s.req = SearchRequest{Query: "*:*", Pagination: Pagination{Start: 0, Rows: 0}}

	return s.performQuery()
}
