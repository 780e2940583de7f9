package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// functions that map a client search request into a solr request

// buildDateFilter translates the request's date bounds into a range filter
// query.  bounds are yyyy-mm-dd in the service's local time zone.
func (s *searchContext) buildDateFilter() (string, error) {
	var from, to *time.Time

	if s.req.DateFrom != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s.req.DateFrom, time.Local)
		if err != nil {
			return "", fmt.Errorf("invalid date_from: [%s]", s.req.DateFrom)
		}
		from = &parsed
	}

	if s.req.DateTo != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s.req.DateTo, time.Local)
		if err != nil {
			return "", fmt.Errorf("invalid date_to: [%s]", s.req.DateTo)
		}
		to = &parsed
	}

	field := s.req.DateField
	if field == "" {
		field = s.voyager.config.Search.DefaultDateField
	}

	return buildDateRangeQuery(from, to, field), nil
}

// buildSpatialParams routes the committed location filter to the wire: boxes
// travel as the bbox request parameter, points and polygons as WKT
// intersection filter queries.
func (s *searchContext) buildSpatialParams(solrReq *solrRequest) error {
	location := s.req.Location

	if location == nil {
		return nil
	}

	if location.Type == filterBox {
		if location.Box == nil {
			return fmt.Errorf("box location missing box geometry")
		}

		solrReq.params.Bbox = formatBox(*location.Box)
		return nil
	}

	fq, err := location.solrFilter(s.voyager.config.Solr.GeoField)
	if err != nil {
		return err
	}

	solrReq.params.Fq = append(solrReq.params.Fq, fq)

	return nil
}

// buildPlacesFilter resolves gazetteer place names and constrains results to
// the union of their geometries.  unresolvable names degrade to a warning,
// never a failed search.
func (s *searchContext) buildPlacesFilter(solrReq *solrRequest) {
	if len(s.req.Places) == 0 {
		return
	}

	places := s.queryGazetteer(s.req.Places)

	if len(places) == 0 {
		warning := fmt.Sprintf("no geometry found for place(s): [%s]", strings.Join(s.req.Places, ", "))
		s.log("[SEARCH] %s", warning)
		solrReq.meta.warnings = append(solrReq.meta.warnings, warning)
		return
	}

	var clauses []string

	for _, place := range places {
		clauses = append(clauses, fmt.Sprintf(`%s:"Intersects(%s)"`, s.voyager.config.Solr.GeoField, place.Geo))
	}

	solrReq.params.Fq = append(solrReq.params.Fq, strings.Join(clauses, " OR "))
}

// buildFacetSelections re-encodes the client's selected facet values as a
// filter query fragment.
func (s *searchContext) buildFacetSelections(solrReq *solrRequest) {
	if len(s.req.Filters) == 0 {
		return
	}

	var categories []facetCategory

	for _, filter := range s.req.Filters {
		category := facetCategory{Field: filter.Field}

		for _, value := range filter.Values {
			category.Values = append(category.Values, facetValue{Name: value, Selected: true})
		}

		categories = append(categories, category)
	}

	if fragment := buildFacetFilter(categories); fragment != "" {
		solrReq.params.Fq = append(solrReq.params.Fq, fragment)
	}
}

func (s *searchContext) buildSolrRequest() searchResponse {
	var solrReq solrRequest

	solrReq.meta.client = s.client

	q := strings.TrimSpace(s.req.Query)
	if q == "" {
		q = "*:*"
	}

	solrReq.params.Q = q
	solrReq.params.Fq = nonemptyValues(s.voyager.config.Solr.Params.Fq)
	solrReq.params.Fl = nonemptyValues(s.voyager.config.Solr.Params.Fl)
	solrReq.params.Start = restrictValue("start", s.req.Pagination.Start, 0, 0)
	solrReq.params.Rows = restrictValue("rows", s.req.Pagination.Rows, 0, 0)

	if s.req.Sort != nil && s.req.Sort.Field != "" {
		if isValidSortOrder(s.req.Sort.Order) == false {
			return searchResponse{status: http.StatusBadRequest, err: fmt.Errorf("invalid sort order: [%s]", s.req.Sort.Order)}
		}

		solrReq.params.Sort = fmt.Sprintf("%s %s", s.req.Sort.Field, s.req.Sort.Order)
	}

	dateFilter, err := s.buildDateFilter()
	if err != nil {
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	if dateFilter != "" {
		solrReq.params.Fq = append(solrReq.params.Fq, dateFilter)
	}

	if err := s.buildSpatialParams(&solrReq); err != nil {
		return searchResponse{status: http.StatusBadRequest, err: err}
	}

	s.buildPlacesFilter(&solrReq)
	s.buildFacetSelections(&solrReq)

	if s.requestFacets == true {
		solrReq.params.FacetFields = s.voyager.maps.facetFields
		solrReq.params.FacetMinCount = 1
		solrReq.params.FacetLimit = s.voyager.config.Search.FacetLimit
	}

	s.solrReq = &solrReq

	return searchResponse{status: http.StatusOK}
}
