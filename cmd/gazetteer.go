package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// gazetteerPlace is one place-name lookup result.  Geo holds the WKT
// geometry as stored in the gazetteer core.
type gazetteerPlace struct {
	Name string `json:"name"`
	Geo  string `json:"geo"`
}

type gazetteerResponse struct {
	Response struct {
		NumFound int              `json:"numFound,omitempty"`
		Docs     []gazetteerPlace `json:"docs,omitempty"`
	} `json:"response,omitempty"`
}

// buildGazetteerURL composes one batched lookup for all names: a
// disjunction of name:"..." clauses, requesting only the name and geometry
// fields.  an empty name list is a caller error and fails loudly; every
// runtime failure mode lives in queryGazetteer instead.
func (v *voyagerContext) buildGazetteerURL(names []string) (string, error) {
	if len(names) == 0 {
		return "", errors.New("gazetteer query requires at least one place name")
	}

	var clauses []string

	for _, name := range names {
		clauses = append(clauses, fmt.Sprintf(`name:"%s"`, name))
	}

	params := url.Values{}
	params.Set("q", strings.Join(clauses, " || "))
	params.Set("fl", "name,geo")
	params.Set("wt", "json")

	return fmt.Sprintf("%s?%s", v.gazetteer.url, params.Encode()), nil
}

func gazetteerCacheKey(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	return strings.Join(sorted, "\x1f")
}

// queryGazetteer resolves place names to geometries.  it never raises: an
// empty name list short-circuits without a network call, and upstream or
// decode failures degrade to an empty result with a logged diagnostic so
// the search UI stays usable.  entries missing a name or geometry are
// dropped.
func (s *searchContext) queryGazetteer(names []string) []gazetteerPlace {
	if len(names) == 0 {
		return []gazetteerPlace{}
	}

	key := gazetteerCacheKey(names)

	if places, ok := s.voyager.gazetteer.cache.Get(key); ok == true {
		s.log("[GAZETTEER] cache hit for %d name(s)", len(names))
		return places
	}

	gazURL, err := s.voyager.buildGazetteerURL(names)
	if err != nil {
		s.err("[GAZETTEER] %s", err.Error())
		return []gazetteerPlace{}
	}

	req, reqErr := http.NewRequest("GET", gazURL, nil)
	if reqErr != nil {
		s.err("[GAZETTEER] NewRequest() failed: %s", reqErr.Error())
		return []gazetteerPlace{}
	}

	res, resErr := s.voyager.gazetteer.client.Do(req)
	if resErr != nil {
		s.err("[GAZETTEER] failed response from GET %s: %s", s.voyager.gazetteer.url, resErr.Error())
		return []gazetteerPlace{}
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		s.err("[GAZETTEER] unexpected status from GET %s: %d", s.voyager.gazetteer.url, res.StatusCode)
		return []gazetteerPlace{}
	}

	var gazRes gazetteerResponse

	if decErr := json.NewDecoder(res.Body).Decode(&gazRes); decErr != nil {
		s.err("[GAZETTEER] Decode() failed: %s", decErr.Error())
		return []gazetteerPlace{}
	}

	// keep only usable entries; absent geometry is a data condition, not an error
	places := []gazetteerPlace{}

	for _, doc := range gazRes.Response.Docs {
		if doc.Name != "" && doc.Geo != "" {
			places = append(places, doc)
		}
	}

	s.log("[GAZETTEER] resolved %d of %d name(s)", len(places), len(names))

	s.voyager.gazetteer.cache.Add(key, places)

	return places
}
