package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func (v *voyagerContext) searchHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(v, c)

	s := searchContext{}
	s.init(v, &cl)

	cl.logRequest()
	resp := s.handleSearchRequest(c)
	cl.logResponse(resp)

	c.JSON(resp.status, resp.data)
}

func (v *voyagerContext) facetsHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(v, c)

	s := searchContext{}
	s.init(v, &cl)

	cl.logRequest()
	resp := s.handleFacetsRequest(c)
	cl.logResponse(resp)

	c.JSON(resp.status, resp.data)
}

func (v *voyagerContext) gazetteerHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(v, c)

	s := searchContext{}
	s.init(v, &cl)

	cl.logRequest()
	resp := s.handleGazetteerRequest(c.QueryArray("name"))
	cl.logResponse(resp)

	if resp.err != nil {
		c.String(resp.status, resp.err.Error())
		return
	}

	c.JSON(resp.status, resp.data)
}

func (v *voyagerContext) filtersHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(v, c)

	cl.logRequest()

	facets, err := v.facetCache.baselineFacets()
	if err != nil {
		cl.err("[FILTERS] %s", err.Error())
		c.JSON(http.StatusServiceUnavailable, FacetsResult{StatusCode: http.StatusServiceUnavailable, StatusMessage: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FacetsResult{StatusCode: http.StatusOK, Facets: facets})
}

func (v *voyagerContext) ignoreHandler(c *gin.Context) {
}

func (v *voyagerContext) versionHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(v, c)

	c.JSON(http.StatusOK, v.version)
}

func (v *voyagerContext) healthCheckHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(v, c)

	s := searchContext{}
	s.init(v, &cl)

	ping := s.handlePingRequest()

	// build response

	internalServiceError := false

	type hcResp struct {
		Healthy bool   `json:"healthy"`
		Message string `json:"message,omitempty"`
	}

	hcSolr := hcResp{Healthy: true}
	if ping.err != nil {
		internalServiceError = true
		hcSolr = hcResp{Healthy: false, Message: ping.err.Error()}
	}

	hcMap := make(map[string]hcResp)
	hcMap["solr"] = hcSolr

	hcStatus := http.StatusOK
	if internalServiceError == true {
		hcStatus = http.StatusInternalServerError
	}

	c.JSON(hcStatus, hcMap)
}

func getBearerToken(authorization string) (string, error) {
	components := strings.Split(strings.Join(strings.Fields(authorization), " "), " ")

	// must have two components, the first of which is "Bearer", and the second a non-empty token
	if len(components) != 2 || components[0] != "Bearer" || components[1] == "" {
		return "", fmt.Errorf("invalid Authorization header: [%s]", authorization)
	}

	token := components[1]

	if token == "undefined" {
		return "", errors.New("bearer token is undefined")
	}

	return token, nil
}

func (v *voyagerContext) authenticateHandler(c *gin.Context) {
	// no configured key means the service runs in public search mode
	if v.config.Service.JWTKey == "" {
		return
	}

	token, err := getBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		log.Printf("authentication failed: [%s]", err.Error())
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims := jwt.MapClaims{}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return []byte(v.config.Service.JWTKey), nil
	}

	if _, err := jwt.ParseWithClaims(token, claims, keyFunc, jwt.WithValidMethods([]string{"HS256"})); err != nil {
		log.Printf("JWT signature for %s is invalid: %s", token, err.Error())
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set("token", token)
	c.Set("claims", claims)
}
