package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBoxWireFormat(t *testing.T) {
	box := boundingBox{
		SouthWest: geoPoint{Lat: 37.7, Lng: -122.5},
		NorthEast: geoPoint{Lat: 37.9, Lng: -122.3},
	}

	// west,south,east,north; 4-decimal fixed; byte-exact backend contract
	assert.Equal(t, "-122.5000,37.7000,-122.3000,37.9000", formatBox(box))
}

func TestFormatBoxRounding(t *testing.T) {
	box := boundingBox{
		SouthWest: geoPoint{Lat: 0.00004, Lng: -0.00005},
		NorthEast: geoPoint{Lat: 12.345678, Lng: 98.7654321},
	}

	got := formatBox(box)

	assert.Equal(t, 4, strings.Count(got, ".")) // one fixed point per coordinate
	assert.NotContains(t, got, " ")
	assert.Equal(t, "12.3457", strings.Split(got, ",")[3])
}

func TestNewBoundingBoxOrderIndependent(t *testing.T) {
	a := geoPoint{Lat: 34.1, Lng: -118.2}
	b := geoPoint{Lat: 34.0, Lng: -118.3}

	assert.Equal(t, newBoundingBox(a, b), newBoundingBox(b, a))

	box := newBoundingBox(a, b)
	assert.Equal(t, geoPoint{Lat: 34.0, Lng: -118.3}, box.SouthWest)
	assert.Equal(t, geoPoint{Lat: 34.1, Lng: -118.2}, box.NorthEast)
}

func TestNewPolygonFilterVertexMinimum(t *testing.T) {
	_, err := newPolygonFilter([]geoPoint{{1, 1}, {2, 2}})
	assert.Error(t, err)

	filter, err := newPolygonFilter([]geoPoint{{1, 1}, {2, 2}, {3, 1}})
	require.NoError(t, err)
	assert.Len(t, filter.Polygon, 3)
}

func TestPointSolrFilter(t *testing.T) {
	filter := newPointFilter(geoPoint{Lat: 34, Lng: -118.3})

	fq, err := filter.solrFilter("geo")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(fq, `geo:"Intersects(POINT`))
	assert.True(t, strings.HasSuffix(fq, `)"`))
	assert.Contains(t, fq, "-118.3")
	assert.Contains(t, fq, "34")
}

func TestPolygonSolrFilterClosesRing(t *testing.T) {
	filter, err := newPolygonFilter([]geoPoint{
		{Lat: 1, Lng: 10},
		{Lat: 2, Lng: 20},
		{Lat: 3, Lng: 10},
	})
	require.NoError(t, err)

	fq, err := filter.solrFilter("geo")
	require.NoError(t, err)

	assert.Contains(t, fq, "POLYGON")

	// ring closes back on the first vertex
	assert.Equal(t, 2, strings.Count(fq, "10 1"))
}

func TestBoxHasNoSolrFilter(t *testing.T) {
	filter := newBoxFilter(newBoundingBox(geoPoint{1, 1}, geoPoint{2, 2}))

	_, err := filter.solrFilter("geo")
	assert.Error(t, err)
}
