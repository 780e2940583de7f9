package main

import (
	"net/url"
	"strconv"
	"strings"
)

type solrRequestParams struct {
	Q             string
	Fq            []string
	Fl            []string
	Sort          string
	Start         int
	Rows          int
	Bbox          string // voyager spatial extension; see formatBox
	FacetFields   []string
	FacetMinCount int
	FacetLimit    int
}

type solrMeta struct {
	client       *clientContext
	warnings     []string
	start        int
	numRecords   int
	totalRecords int
	maxScore     float32
	firstDoc     *solrDocument
}

type solrRequest struct {
	params solrRequestParams
	meta   solrMeta
}

// values renders the request in Solr's classic parameter API; the facet
// pair encoding this requests is what parseFacets later decodes.
func (r *solrRequest) values() url.Values {
	params := url.Values{}

	params.Set("q", r.params.Q)
	params.Set("start", strconv.Itoa(r.params.Start))
	params.Set("rows", strconv.Itoa(r.params.Rows))
	params.Set("wt", "json")

	for _, fq := range r.params.Fq {
		params.Add("fq", fq)
	}

	if len(r.params.Fl) > 0 {
		params.Set("fl", strings.Join(r.params.Fl, ","))
	}

	if r.params.Sort != "" {
		params.Set("sort", r.params.Sort)
	}

	if r.params.Bbox != "" {
		params.Set("bbox", r.params.Bbox)
	}

	if len(r.params.FacetFields) > 0 {
		params.Set("facet", "true")
		params.Set("facet.mincount", strconv.Itoa(r.params.FacetMinCount))

		if r.params.FacetLimit != 0 {
			params.Set("facet.limit", strconv.Itoa(r.params.FacetLimit))
		}

		for _, field := range r.params.FacetFields {
			params.Add("facet.field", field)
		}
	}

	return params
}

type solrResponseHeader struct {
	Status int `json:"status,omitempty"`
	QTime  int `json:"QTime,omitempty"`
}

type solrDocument map[string]interface{}

type solrResponseDocuments struct {
	NumFound int            `json:"numFound,omitempty"`
	Start    int            `json:"start,omitempty"`
	MaxScore float32        `json:"maxScore,omitempty"`
	Docs     []solrDocument `json:"docs,omitempty"`
}

// solrFacetCounts is the typed form of the facet_counts block.  facet_fields
// keeps Solr's interleaved name/count pair arrays as-is; parseFacets owns
// the pair decoding.
type solrFacetCounts struct {
	FacetQueries map[string]interface{}   `json:"facet_queries,omitempty"`
	FacetFields  map[string][]interface{} `json:"facet_fields,omitempty"`
}

type solrError struct {
	Metadata []string `json:"metadata,omitempty"`
	Msg      string   `json:"msg,omitempty"`
	Code     int      `json:"code,omitempty"`
}

// a catch-all for search and ping responses
type solrResponse struct {
	ResponseHeader solrResponseHeader     `json:"responseHeader,omitempty"`
	Response       solrResponseDocuments  `json:"response,omitempty"`
	FacetCountsRaw map[string]interface{} `json:"facet_counts,omitempty"`
	FacetCounts    solrFacetCounts        // converted from FacetCountsRaw
	Error          solrError              `json:"error,omitempty"`
	Status         string                 `json:"status,omitempty"`
	meta           *solrMeta              // pointer to struct in corresponding solrRequest
}
