package main

import (
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// git commit used for this build; supplied at compile time
var gitCommit string

type serviceVersion struct {
	BuildVersion string `json:"build,omitempty"`
	GoVersion    string `json:"go_version,omitempty"`
	GitCommit    string `json:"git_commit,omitempty"`
}

type voyagerSolr struct {
	client            *http.Client
	healthcheckClient *http.Client
	url               string
}

type voyagerGazetteer struct {
	client *http.Client
	url    string
	cache  *lru.Cache[string, []gazetteerPlace]
}

type voyagerTranslations struct {
	bundle *i18n.Bundle
}

type voyagerMaps struct {
	facetFields  []string                     // configured order; drives facet panel layout
	facetXIDs    map[string]string            // facet field -> display name translation ID
	facetConfigs map[string]searchConfigFacet // facet field -> config entry
}

type voyagerContext struct {
	randomSource *rand.Rand
	config       *searchConfig
	translations voyagerTranslations
	version      serviceVersion
	solr         voyagerSolr
	gazetteer    voyagerGazetteer
	maps         voyagerMaps
	facetCache   *facetCache
}

func httpClientWithTimeouts(connTimeout, readTimeout string) *http.Client {
	conn := integerWithMinimum(connTimeout, 5)
	read := integerWithMinimum(readTimeout, 5)

	return &http.Client{
		Timeout: time.Duration(read) * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   time.Duration(conn) * time.Second,
				KeepAlive: 60 * time.Second,
			}).DialContext,
			MaxIdleConns:        100, // we are hitting one solr host, so
			MaxIdleConnsPerHost: 100, // these two values can be the same
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func (v *voyagerContext) initVersion() {
	buildVersion := "unknown"
	files, _ := filepath.Glob("buildtag.*")
	if len(files) == 1 {
		buildVersion = strings.Replace(files[0], "buildtag.", "", 1)
	}

	v.version = serviceVersion{
		BuildVersion: buildVersion,
		GoVersion:    fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		GitCommit:    gitCommit,
	}

	log.Printf("[SERVICE] version.BuildVersion = [%s]", v.version.BuildVersion)
	log.Printf("[SERVICE] version.GoVersion    = [%s]", v.version.GoVersion)
	log.Printf("[SERVICE] version.GitCommit    = [%s]", v.version.GitCommit)
}

func (v *voyagerContext) initSolr() {
	v.solr = voyagerSolr{
		url:               fmt.Sprintf("%s/%s/%s", v.config.Solr.Host, v.config.Solr.Core, v.config.Solr.Handler),
		client:            httpClientWithTimeouts(v.config.Solr.ConnTimeout, v.config.Solr.ReadTimeout),
		healthcheckClient: httpClientWithTimeouts(v.config.Solr.ConnTimeout, "5"),
	}

	// create facet maps, preserving configured order

	v.maps.facetXIDs = make(map[string]string)
	v.maps.facetConfigs = make(map[string]searchConfigFacet)

	for _, facet := range v.config.Facets {
		v.maps.facetFields = append(v.maps.facetFields, facet.Field)
		v.maps.facetXIDs[facet.Field] = facet.XID
		v.maps.facetConfigs[facet.Field] = facet
	}

	log.Printf("[SERVICE] solr.url             = [%s]", v.solr.url)
	log.Printf("[SERVICE] facet fields         = [%s]", strings.Join(v.maps.facetFields, ", "))
}

func (v *voyagerContext) initGazetteer() {
	cacheSize := v.config.Gazetteer.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}

	cache, err := lru.New[string, []gazetteerPlace](cacheSize)
	if err != nil {
		log.Printf("error creating gazetteer cache: %s", err.Error())
		os.Exit(1)
	}

	v.gazetteer = voyagerGazetteer{
		url:    fmt.Sprintf("%s/%s/%s", v.config.Gazetteer.Host, v.config.Gazetteer.Core, v.config.Gazetteer.Handler),
		client: httpClientWithTimeouts(v.config.Gazetteer.ConnTimeout, v.config.Gazetteer.ReadTimeout),
		cache:  cache,
	}

	log.Printf("[SERVICE] gazetteer.url        = [%s]", v.gazetteer.url)
	log.Printf("[SERVICE] gazetteer.cacheSize  = [%d]", cacheSize)
}

func (v *voyagerContext) initTranslations() {
	defaultLang := language.English

	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, _ := filepath.Glob("i18n/*.toml")
	for _, f := range files {
		bundle.MustLoadMessageFile(f)
	}

	v.translations = voyagerTranslations{
		bundle: bundle,
	}
}

func (v *voyagerContext) validateConfig() {
	// ensure the existence of required config values

	invalid := false

	var miscValues stringValidator

	miscValues.requireValue(v.config.Service.Port, "service port")

	miscValues.requireValue(v.config.Solr.Host, "solr host")
	miscValues.requireValue(v.config.Solr.Core, "solr core")
	miscValues.requireValue(v.config.Solr.Handler, "solr handler")
	miscValues.requireValue(v.config.Solr.GeoField, "solr geo field")

	miscValues.requireValue(v.config.Gazetteer.Host, "gazetteer host")
	miscValues.requireValue(v.config.Gazetteer.Core, "gazetteer core")
	miscValues.requireValue(v.config.Gazetteer.Handler, "gazetteer handler")

	miscValues.requireValue(v.config.Search.DefaultDateField, "default date field")

	if len(v.config.Facets) == 0 {
		log.Printf("[VALIDATE] facet list is empty")
		invalid = true
	}

	for i, facet := range v.config.Facets {
		miscValues.setPrefix(fmt.Sprintf("facet index %d: ", i))
		miscValues.requireValue(facet.Field, "facet field")
		miscValues.requireValue(facet.XID, "facet xid")
	}

	if invalid || miscValues.Invalid() {
		log.Printf("[VALIDATE] exiting due to missing/incorrect field value(s) above")
		os.Exit(1)
	}
}

func initializeService(cfg *searchConfig) *voyagerContext {
	v := voyagerContext{}

	v.config = cfg
	v.randomSource = rand.New(rand.NewSource(time.Now().UnixNano()))

	v.initTranslations()
	v.initVersion()
	v.initSolr()
	v.initGazetteer()

	v.validateConfig()

	refresh := cfg.Search.FacetCacheRefresh
	if refresh <= 0 {
		refresh = 300
	}

	v.facetCache = newFacetCache(&v, refresh)

	return &v
}
