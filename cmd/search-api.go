package main

// request/response shapes exchanged with the search client (the SPA).

type Pagination struct {
	Start int `json:"start"`
	Rows  int `json:"rows"`
}

type SortOrder struct {
	Field string `json:"field,omitempty"`
	Order string `json:"order,omitempty"`
}

// SearchFilter is one facet field with the values the client has selected.
type SearchFilter struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

type SearchRequest struct {
	Query      string         `json:"query,omitempty"`
	DateFrom   string         `json:"date_from,omitempty"` // yyyy-mm-dd
	DateTo     string         `json:"date_to,omitempty"`   // yyyy-mm-dd
	DateField  string         `json:"date_field,omitempty"`
	Location   *spatialFilter `json:"location,omitempty"`
	Places     []string       `json:"places,omitempty"` // gazetteer place names
	Filters    []SearchFilter `json:"filters,omitempty"`
	Pagination Pagination     `json:"pagination,omitempty"`
	Sort       *SortOrder     `json:"sort,omitempty"`
}

type SearchPagination struct {
	Start int `json:"start"`
	Rows  int `json:"rows"`
	Total int `json:"total"`
}

type SearchResult struct {
	StatusCode    int              `json:"status_code"`
	StatusMessage string           `json:"status_message,omitempty"`
	Pagination    SearchPagination `json:"pagination"`
	Docs          []solrDocument   `json:"docs"`
	Facets        []facetCategory  `json:"facets,omitempty"`
	Warnings      []string         `json:"warnings,omitempty"`
	ElapsedMS     int64            `json:"elapsed_ms,omitempty"`
}

type FacetsResult struct {
	StatusCode    int             `json:"status_code"`
	StatusMessage string          `json:"status_message,omitempty"`
	Facets        []facetCategory `json:"facets"`
	ElapsedMS     int64           `json:"elapsed_ms,omitempty"`
}

type GazetteerResult struct {
	Places []gazetteerPlace `json:"places"`
}
