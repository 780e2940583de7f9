package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
)

type searchConfigService struct {
	Port      string `json:"port,omitempty"`
	JWTKey    string `json:"jwt_key,omitempty"`
	StaticDir string `json:"static_dir,omitempty"` // SPA bundle to serve
}

type searchConfigSolrParams struct {
	Fq []string `json:"fq,omitempty"` // catalog definition should go here
	Fl []string `json:"fl,omitempty"`
}

type searchConfigSolr struct {
	Host        string                 `json:"host,omitempty"`
	Core        string                 `json:"core,omitempty"`
	Handler     string                 `json:"handler,omitempty"`
	ConnTimeout string                 `json:"conn_timeout,omitempty"`
	ReadTimeout string                 `json:"read_timeout,omitempty"`
	GeoField    string                 `json:"geo_field,omitempty"` // spatial field for WKT intersection queries
	Params      searchConfigSolrParams `json:"params,omitempty"`
}

type searchConfigGazetteer struct {
	Host        string `json:"host,omitempty"`
	Core        string `json:"core,omitempty"`
	Handler     string `json:"handler,omitempty"`
	ConnTimeout string `json:"conn_timeout,omitempty"`
	ReadTimeout string `json:"read_timeout,omitempty"`
	CacheSize   int    `json:"cache_size,omitempty"`
}

type searchConfigFacet struct {
	XID   string `json:"xid,omitempty"` // translation ID for the display name
	Field string `json:"field,omitempty"`
}

type searchConfigSearch struct {
	DefaultDateField  string `json:"default_date_field,omitempty"`
	FacetLimit        int    `json:"facet_limit,omitempty"`
	FacetCacheRefresh int    `json:"facet_cache_refresh,omitempty"` // seconds
}

type searchConfig struct {
	Service   searchConfigService   `json:"service,omitempty"`
	Solr      searchConfigSolr      `json:"solr,omitempty"`
	Gazetteer searchConfigGazetteer `json:"gazetteer,omitempty"`
	Search    searchConfigSearch    `json:"search,omitempty"`
	Facets    []searchConfigFacet   `json:"facets,omitempty"`
}

func getSortedJSONEnvVars() []string {
	var keys []string

	for _, keyval := range os.Environ() {
		key := strings.Split(keyval, "=")[0]
		if strings.HasPrefix(key, "VOYAGER_SEARCH_WS_JSON_") {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

func loadConfig() *searchConfig {
	cfg := searchConfig{}

	// json configs

	envs := getSortedJSONEnvVars()

	valid := true

	for _, env := range envs {
		log.Printf("[CONFIG] loading %s ...", env)
		if val := os.Getenv(env); val != "" {
			dec := json.NewDecoder(bytes.NewReader([]byte(val)))
			dec.DisallowUnknownFields()

			if err := dec.Decode(&cfg); err != nil {
				log.Printf("error decoding %s: %s", env, err.Error())
				valid = false
			}
		}
	}

	if valid == false {
		log.Printf("exiting due to json decode error(s) above")
		os.Exit(1)
	}

	// optional convenience overrides to simplify deployment config
	if host := os.Getenv("VOYAGER_SEARCH_WS_SOLR_HOST"); host != "" {
		cfg.Solr.Host = host
	}

	if host := os.Getenv("VOYAGER_SEARCH_WS_GAZETTEER_HOST"); host != "" {
		cfg.Gazetteer.Host = host
	}

	bytes, err := json.Marshal(cfg)
	if err != nil {
		log.Printf("error encoding search config json: %s", err.Error())
		os.Exit(1)
	}

	log.Printf("[CONFIG] composite json:")
	log.Printf("\n%s", string(bytes))

	return &cfg
}
