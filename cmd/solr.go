package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

func (s *searchContext) convertFacetCounts() error {
	// convert Solr's "facet_counts" block to internal structures.
	// the block mixes heterogeneous sub-blocks (facet_queries, facet_fields,
	// facet_ranges, ...), so we read it as map[string]interface{} and decode
	// the map into typed fields, leaving the interleaved facet_fields pair
	// arrays intact for parseFacets.

	if s.solrRes.FacetCountsRaw == nil {
		return nil
	}

	var facetCounts solrFacetCounts

	cfg := &mapstructure.DecoderConfig{
		Metadata:   nil,
		Result:     &facetCounts,
		TagName:    "json",
		ZeroFields: true,
	}

	dec, _ := mapstructure.NewDecoder(cfg)

	if mapDecErr := dec.Decode(s.solrRes.FacetCountsRaw); mapDecErr != nil {
		s.log("mapstructure.Decode() failed: %s", mapDecErr.Error())
		return fmt.Errorf("failed to decode Solr facet_counts map")
	}

	s.solrRes.FacetCounts = facetCounts

	return nil
}

func (s *searchContext) populateMetaFields() {
	// fill out meta fields for easier use later

	s.solrRes.meta = &s.solrReq.meta

	s.solrRes.meta.start = s.solrReq.params.Start
	s.solrRes.meta.numRecords = len(s.solrRes.Response.Docs)
	s.solrRes.meta.totalRecords = s.solrRes.Response.NumFound

	if s.solrRes.meta.numRecords > 0 {
		s.solrRes.meta.maxScore = s.solrRes.Response.MaxScore
		s.solrRes.meta.firstDoc = &s.solrRes.Response.Docs[0]
	}
}

func (s *searchContext) solrQuery() error {
	req, reqErr := http.NewRequest("GET", s.voyager.solr.url, nil)
	if reqErr != nil {
		s.log("NewRequest() failed: %s", reqErr.Error())
		return fmt.Errorf("failed to create Solr request")
	}

	req.URL.RawQuery = s.solrReq.values().Encode()

	if s.client.opts.verbose == true {
		s.log("[SOLR] req: [%s]", req.URL.RawQuery)
	} else {
		s.log("[SOLR] req: [%s]", s.solrReq.params.Q)
	}

	start := time.Now()
	res, resErr := s.solrClient.Do(req)
	elapsedMS := int64(time.Since(start) / time.Millisecond)

	// external service failure logging (scenario 1)

	if resErr != nil {
		status := http.StatusBadRequest
		errMsg := resErr.Error()
		if strings.Contains(errMsg, "Timeout") {
			status = http.StatusRequestTimeout
			errMsg = fmt.Sprintf("%s timed out", s.voyager.solr.url)
		} else if strings.Contains(errMsg, "connection refused") {
			status = http.StatusServiceUnavailable
			errMsg = fmt.Sprintf("%s refused connection", s.voyager.solr.url)
		}

		s.log("client.Do() failed: %s", resErr.Error())
		s.log("ERROR: Failed response from GET %s - %d:%s. Elapsed Time: %d (ms)", s.voyager.solr.url, status, errMsg, elapsedMS)
		return fmt.Errorf("failed to receive Solr response")
	}

	defer res.Body.Close()

	var solrRes solrResponse

	decoder := json.NewDecoder(res.Body)

	// external service failure logging (scenario 2)

	if decErr := decoder.Decode(&solrRes); decErr != nil {
		s.log("Decode() failed: %s", decErr.Error())
		s.log("ERROR: Failed response from GET %s - %d:%s. Elapsed Time: %d (ms)", s.voyager.solr.url, http.StatusInternalServerError, decErr.Error(), elapsedMS)
		return fmt.Errorf("failed to decode Solr response")
	}

	// external service success logging

	s.log("Successful Solr response from GET %s. Elapsed Time: %d (ms)", s.voyager.solr.url, elapsedMS)

	s.solrRes = &solrRes

	// log abbreviated results

	logHeader := fmt.Sprintf("[SOLR] res: header: { status = %d, QTime = %d }", solrRes.ResponseHeader.Status, solrRes.ResponseHeader.QTime)

	// quick validation
	if solrRes.ResponseHeader.Status != 0 {
		s.log("%s, error: { code = %d, msg = %s }", logHeader, solrRes.Error.Code, solrRes.Error.Msg)
		return fmt.Errorf("%d - %s", solrRes.Error.Code, solrRes.Error.Msg)
	}

	if err := s.convertFacetCounts(); err != nil {
		return err
	}

	s.populateMetaFields()

	s.log("%s, body: { start = %d, rows = %d, total = %d, maxScore = %0.2f }", logHeader, solrRes.meta.start, solrRes.meta.numRecords, solrRes.meta.totalRecords, solrRes.meta.maxScore)

	return nil
}
