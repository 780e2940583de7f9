package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

type clientOpts struct {
	debug   bool // controls whether debug info is added to results
	verbose bool // controls whether verbose Solr requests are logged
}

type clientContext struct {
	reqID      string          // internally generated
	start      time.Time       // internally set
	opts       clientOpts      // options set by client
	localizer  *i18n.Localizer // per-request localization
	ginCtx     *gin.Context    // gin context; nil for internal requests
	acceptLang string          // first language requested by client
}

func boolOptionWithFallback(opt string, fallback bool) bool {
	var err error
	var val bool

	if val, err = strconv.ParseBool(opt); err != nil {
		val = fallback
	}

	return val
}

func (c *clientContext) init(v *voyagerContext, ctx *gin.Context) {
	c.ginCtx = ctx

	c.start = time.Now()
	c.reqID = fmt.Sprintf("%08x", v.randomSource.Uint32())

	// internal requests (facet cache refresh, draw sessions) have no gin context
	c.acceptLang = "en"

	if ctx != nil {
		if lang := strings.Split(ctx.GetHeader("Accept-Language"), ",")[0]; lang != "" {
			c.acceptLang = lang
		}

		c.opts.debug = boolOptionWithFallback(ctx.Query("debug"), false)
		c.opts.verbose = boolOptionWithFallback(ctx.Query("verbose"), false)
	}

	c.localizer = i18n.NewLocalizer(v.translations.bundle, c.acceptLang)
}

func (c *clientContext) logRequest() {
	if c.ginCtx == nil {
		return
	}

	query := ""
	if c.ginCtx.Request.URL.RawQuery != "" {
		query = fmt.Sprintf("?%s", c.ginCtx.Request.URL.RawQuery)
	}

	c.log("[REQUEST] %s %s%s  (%s)", c.ginCtx.Request.Method, c.ginCtx.Request.URL.Path, query, c.acceptLang)
}

func (c *clientContext) logResponse(resp searchResponse) {
	msg := fmt.Sprintf("[RESPONSE] status: %d", resp.status)

	if resp.err != nil {
		msg = msg + fmt.Sprintf(", error: %s", resp.err.Error())
	}

	c.log("%s", msg)
}

func (c *clientContext) printf(prefix, format string, args ...interface{}) {
	str := fmt.Sprintf(format, args...)

	if prefix != "" {
		str = strings.Join([]string{prefix, str}, " ")
	}

	log.Printf("[%s] %s", c.reqID, str)
}

func (c *clientContext) log(format string, args ...interface{}) {
	c.printf("", format, args...)
}

func (c *clientContext) err(format string, args ...interface{}) {
	c.printf("ERROR:", format, args...)
}

// localize returns the translation for a message ID, or the empty string
// when none exists (callers decide the fallback).
func (c *clientContext) localize(id string) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return ""
	}

	return msg
}
