package main

import (
	"fmt"
	"time"
)

const (
	dateTokenFormat  = "2006-01-02T15:04:05.000Z"
	defaultDateField = "modified"
)

// buildDateRangeQuery converts an optional date pair into a Solr inclusive
// range query against the given field (default "modified").  bounds are
// normalized to local start/end of day, then converted to true UTC instants;
// a missing bound becomes the open range marker.  returns the empty string
// when both bounds are absent.
func buildDateRangeQuery(from, to *time.Time, field string) string {
	if from == nil && to == nil {
		return ""
	}

	if field == "" {
		field = defaultDateField
	}

	fromToken := "*"
	if from != nil {
		start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
		fromToken = start.UTC().Format(dateTokenFormat)
	}

	toToken := "*"
	if to != nil {
		end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(999*time.Millisecond), to.Location())
		toToken = end.UTC().Format(dateTokenFormat)
	}

	return fmt.Sprintf("%s:[%s TO %s]", field, fromToken, toToken)
}
