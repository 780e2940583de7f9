package main

// declarative overlay rendering: committed filters and in-progress gestures
// map to drawing instructions the map client executes verbatim.  no state,
// no mutation.

type overlayShape string

const (
	overlayRectangle overlayShape = "rectangle"
	overlayMarker    overlayShape = "marker"
	overlayPolygon   overlayShape = "polygon"
)

type overlayStroke string

const (
	strokeSolid  overlayStroke = "solid"
	strokeDashed overlayStroke = "dashed"
)

const defaultMarkerIcon = "marker-default"

type overlay struct {
	Shape  overlayShape  `json:"shape"`
	Stroke overlayStroke `json:"stroke,omitempty"`
	Box    *boundingBox  `json:"box,omitempty"`
	Point  *geoPoint     `json:"point,omitempty"`
	Ring   []geoPoint    `json:"ring,omitempty"`
	Icon   string        `json:"icon,omitempty"`
}

// renderFilter maps a committed filter to its solid overlay.  nil or
// malformed input renders nothing.
func renderFilter(f *spatialFilter) []overlay {
	if f == nil {
		return nil
	}

	switch f.Type {
	case filterBox:
		if f.Box == nil {
			return nil
		}

		return []overlay{{Shape: overlayRectangle, Stroke: strokeSolid, Box: f.Box}}

	case filterPoint:
		if f.Point == nil {
			return nil
		}

		return []overlay{{Shape: overlayMarker, Point: f.Point, Icon: defaultMarkerIcon}}

	case filterPolygon:
		if len(f.Polygon) == 0 {
			return nil
		}

		// close the ring for display
		ring := make([]geoPoint, 0, len(f.Polygon)+1)
		ring = append(ring, f.Polygon...)
		ring = append(ring, f.Polygon[0])

		return []overlay{{Shape: overlayPolygon, Stroke: strokeSolid, Ring: ring}}
	}

	return nil
}

// renderSession maps in-progress geometry to dashed overlays so the user
// gets continuous feedback while dragging or placing vertices.
func renderSession(s drawSession) []overlay {
	switch s.Mode {
	case modeBox:
		if s.Anchor == nil || s.Cursor == nil {
			return nil
		}

		box := newBoundingBox(*s.Anchor, *s.Cursor)

		return []overlay{{Shape: overlayRectangle, Stroke: strokeDashed, Box: &box}}

	case modePolygon:
		if len(s.Vertices) == 0 {
			return nil
		}

		ring := make([]geoPoint, len(s.Vertices))
		copy(ring, s.Vertices)

		return []overlay{{Shape: overlayPolygon, Stroke: strokeDashed, Ring: ring}}
	}

	return nil
}
