package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

/**
 * Main entry point for the web service
 */
func main() {
	log.Printf("===> voyager-search-ws starting up <===")

	cfg := loadConfig()
	voyager := initializeService(cfg)

	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	router.Use(gzip.Gzip(gzip.DefaultCompression))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsCfg))

	p := ginprometheus.NewPrometheus("gin")

	// roundabout setup of /metrics endpoint to avoid double-gzip of response
	router.Use(p.HandlerFunc())
	h := promhttp.InstrumentMetricHandler(prometheus.DefaultRegisterer, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{DisableCompression: true}))

	router.GET(p.MetricsPath, func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	})

	pprof.Register(router)

	router.GET("/favicon.ico", voyager.ignoreHandler)

	router.GET("/version", voyager.versionHandler)
	router.GET("/healthcheck", voyager.healthCheckHandler)

	if api := router.Group("/api"); api != nil {
		api.POST("/search", voyager.authenticateHandler, voyager.searchHandler)
		api.POST("/search/facets", voyager.authenticateHandler, voyager.facetsHandler)
		api.GET("/gazetteer", voyager.authenticateHandler, voyager.gazetteerHandler)
		api.GET("/filters", voyager.authenticateHandler, voyager.filtersHandler)
	}

	router.GET("/ws/draw", voyager.drawHandler)

	// the SPA bundle; html5 mode so client-side routes resolve to index.html
	if cfg.Service.StaticDir != "" {
		router.Use(static.Serve("/", static.LocalFile(cfg.Service.StaticDir, true)))
	}

	portStr := fmt.Sprintf(":%s", voyager.config.Service.Port)
	log.Printf("Start service on %s", portStr)

	log.Fatal(router.Run(portStr))
}
