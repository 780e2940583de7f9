package main

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// geoPoint is a geographic coordinate pair. Coordinate validity
// (lat -90..90, lng -180..180) is guaranteed by the map layer.
type geoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type boundingBox struct {
	SouthWest geoPoint `json:"south_west"`
	NorthEast geoPoint `json:"north_east"`
}

// newBoundingBox returns the axis-aligned envelope of two corner points.
// corner order is irrelevant; equal corners yield a zero-area box, which
// downstream consumers must tolerate.
func newBoundingBox(a, b geoPoint) boundingBox {
	box := boundingBox{
		SouthWest: geoPoint{Lat: a.Lat, Lng: a.Lng},
		NorthEast: geoPoint{Lat: b.Lat, Lng: b.Lng},
	}

	if box.SouthWest.Lat > box.NorthEast.Lat {
		box.SouthWest.Lat, box.NorthEast.Lat = box.NorthEast.Lat, box.SouthWest.Lat
	}

	if box.SouthWest.Lng > box.NorthEast.Lng {
		box.SouthWest.Lng, box.NorthEast.Lng = box.NorthEast.Lng, box.SouthWest.Lng
	}

	return box
}

// formatBox renders a box in the west,south,east,north wire format consumed
// by the search backend.  exact order and 4-decimal precision are a
// compatibility contract; do not alter.
func formatBox(b boundingBox) string {
	return fmt.Sprintf("%.4f,%.4f,%.4f,%.4f", b.SouthWest.Lng, b.SouthWest.Lat, b.NorthEast.Lng, b.NorthEast.Lat)
}

// spatial filter types
const (
	filterBox     = "box"
	filterPoint   = "point"
	filterPolygon = "polygon"
)

// spatialFilter is the committed location selection: exactly one of the
// shape fields is set, per Type.
type spatialFilter struct {
	Type    string       `json:"type"`
	Box     *boundingBox `json:"box,omitempty"`
	Point   *geoPoint    `json:"point,omitempty"`
	Polygon []geoPoint   `json:"polygon,omitempty"`
}

func newBoxFilter(box boundingBox) *spatialFilter {
	return &spatialFilter{Type: filterBox, Box: &box}
}

func newPointFilter(location geoPoint) *spatialFilter {
	return &spatialFilter{Type: filterPoint, Point: &location}
}

// newPolygonFilter rejects vertex lists that cannot form a polygon.
func newPolygonFilter(vertices []geoPoint) (*spatialFilter, error) {
	if len(vertices) < 3 {
		return nil, errors.New("polygon filter requires at least 3 vertices")
	}

	verts := make([]geoPoint, len(vertices))
	copy(verts, vertices)

	return &spatialFilter{Type: filterPolygon, Polygon: verts}, nil
}

// wktGeometry converts a point or polygon filter to its WKT representation.
// polygon rings are closed by repeating the first vertex.
func (f *spatialFilter) wktGeometry() (string, error) {
	switch f.Type {
	case filterPoint:
		return wkt.Marshal(geom.NewPointFlat(geom.XY, []float64{f.Point.Lng, f.Point.Lat}))

	case filterPolygon:
		flat := make([]float64, 0, 2*(len(f.Polygon)+1))
		for _, v := range f.Polygon {
			flat = append(flat, v.Lng, v.Lat)
		}
		flat = append(flat, f.Polygon[0].Lng, f.Polygon[0].Lat)

		return wkt.Marshal(geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}))
	}

	return "", fmt.Errorf("no WKT representation for filter type: [%s]", f.Type)
}

// solrFilter renders a point or polygon filter as an intersection filter
// query against the configured spatial field.  boxes are not handled here;
// they travel as a separate bbox request parameter (see formatBox).
func (f *spatialFilter) solrFilter(geoField string) (string, error) {
	geometry, err := f.wktGeometry()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`%s:"Intersects(%s)"`, geoField, geometry), nil
}
