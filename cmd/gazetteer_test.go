package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGazetteerURLEmptyNames(t *testing.T) {
	v := newTestVoyager(t)

	_, err := v.buildGazetteerURL(nil)
	assert.Error(t, err)

	_, err = v.buildGazetteerURL([]string{})
	assert.Error(t, err)
}

func TestBuildGazetteerURLClauses(t *testing.T) {
	v := newTestVoyager(t)

	gazURL, err := v.buildGazetteerURL([]string{"United States", "Canada"})
	require.NoError(t, err)

	// clause separator survives encoding
	assert.Contains(t, gazURL, "%7C%7C")

	parsed, err := url.Parse(gazURL)
	require.NoError(t, err)

	params := parsed.Query()

	assert.Equal(t, `name:"United States" || name:"Canada"`, params.Get("q"))
	assert.Equal(t, "name,geo", params.Get("fl"))
	assert.Equal(t, "json", params.Get("wt"))
}

func newGazetteerTestServer(t *testing.T, v *voyagerContext, status int, body string) (*httptest.Server, *int) {
	t.Helper()

	requests := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))

	t.Cleanup(srv.Close)

	v.gazetteer.client = srv.Client()
	v.gazetteer.url = srv.URL

	return srv, &requests
}

func TestQueryGazetteerEmptyNamesSkipsNetwork(t *testing.T) {
	v := newTestVoyager(t)
	_, requests := newGazetteerTestServer(t, v, http.StatusOK, `{"response":{"docs":[]}}`)

	s := newTestSearch(t, v)

	places := s.queryGazetteer(nil)

	assert.Empty(t, places)
	assert.Equal(t, 0, *requests)
}

func TestQueryGazetteerFiltersIncompleteDocs(t *testing.T) {
	v := newTestVoyager(t)
	body := `{"response":{"numFound":3,"docs":[
		{"name":"United States","geo":"POLYGON ((-125 24, -66 24, -66 49, -125 49, -125 24))"},
		{"name":"Atlantis"},
		{"geo":"POINT (0 0)"}
	]}}`
	newGazetteerTestServer(t, v, http.StatusOK, body)

	s := newTestSearch(t, v)

	places := s.queryGazetteer([]string{"United States", "Atlantis"})

	require.Len(t, places, 1)
	assert.Equal(t, "United States", places[0].Name)
	assert.NotEmpty(t, places[0].Geo)
}

func TestQueryGazetteerUpstreamFailure(t *testing.T) {
	v := newTestVoyager(t)
	newGazetteerTestServer(t, v, http.StatusInternalServerError, "boom")

	s := newTestSearch(t, v)

	assert.Empty(t, s.queryGazetteer([]string{"Canada"}))
}

func TestQueryGazetteerMalformedResponse(t *testing.T) {
	v := newTestVoyager(t)
	newGazetteerTestServer(t, v, http.StatusOK, "this is not json")

	s := newTestSearch(t, v)

	assert.Empty(t, s.queryGazetteer([]string{"Canada"}))
}

func TestQueryGazetteerCachesBatches(t *testing.T) {
	v := newTestVoyager(t)
	body := `{"response":{"docs":[{"name":"Canada","geo":"POINT (-106 56)"}]}}`
	_, requests := newGazetteerTestServer(t, v, http.StatusOK, body)

	s := newTestSearch(t, v)

	first := s.queryGazetteer([]string{"Canada", "United States"})
	second := s.queryGazetteer([]string{"United States", "Canada"}) // key is order-insensitive

	assert.Equal(t, first, second)
	assert.Equal(t, 1, *requests)
}
