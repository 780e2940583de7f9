package main

// interactive map drawing, expressed as a pure state machine over pointer
// events.  transitions never touch the map directly; side effects (commit a
// filter, toggle native drag-panning) are returned as data so the transport
// layer and tests can apply them however they like.

type drawMode string

const (
	modeNone    drawMode = "none"
	modeBox     drawMode = "box"
	modePoint   drawMode = "point"
	modePolygon drawMode = "polygon"
)

// drawSession is the transient state of one drawing gesture.  Anchor is
// non-nil only while a box drag is in progress; Vertices accumulate only in
// polygon mode and are cleared on every mode change.
type drawSession struct {
	Mode     drawMode   `json:"mode"`
	Anchor   *geoPoint  `json:"anchor,omitempty"`
	Cursor   *geoPoint  `json:"cursor,omitempty"`
	Vertices []geoPoint `json:"vertices,omitempty"`
}

type drawEventType string

const (
	eventSetMode     drawEventType = "set_mode"
	eventPointerDown drawEventType = "pointer_down"
	eventPointerMove drawEventType = "pointer_move"
	eventPointerUp   drawEventType = "pointer_up"
	eventClick       drawEventType = "click"
	eventDoubleClick drawEventType = "double_click"
)

type drawEvent struct {
	Type  drawEventType `json:"type"`
	Mode  drawMode      `json:"mode,omitempty"`
	Point *geoPoint     `json:"point,omitempty"`
}

type drawEffectType string

const (
	effectEmitFilter     drawEffectType = "emit_filter"
	effectDisableMapDrag drawEffectType = "disable_map_drag"
	effectEnableMapDrag  drawEffectType = "enable_map_drag"
)

type drawEffect struct {
	Type   drawEffectType `json:"type"`
	Filter *spatialFilter `json:"filter,omitempty"`
}

func emitFilter(f *spatialFilter) drawEffect {
	return drawEffect{Type: effectEmitFilter, Filter: f}
}

// transition applies one event to a drawing session and returns the new
// session plus any effects.  a committed filter is never stored here; it is
// host state, delivered via an emit_filter effect and cleared only by
// explicit user action.
func transition(s drawSession, e drawEvent) (drawSession, []drawEffect) {
	var effects []drawEffect

	switch e.Type {
	case eventSetMode:
		// entering any mode discards in-progress geometry.  an abandoned
		// box drag must hand panning back to the map.
		if s.Anchor != nil {
			effects = append(effects, drawEffect{Type: effectEnableMapDrag})
		}

		return drawSession{Mode: e.Mode}, effects

	case eventPointerDown:
		if s.Mode != modeBox || e.Point == nil {
			return s, nil
		}

		// start a box drag: the anchor is fixed, the live box is degenerate
		// until the pointer moves.  native panning would fight the drag.
		down := *e.Point
		s.Anchor = &down
		cursor := down
		s.Cursor = &cursor

		return s, []drawEffect{{Type: effectDisableMapDrag}}

	case eventPointerMove:
		if s.Mode != modeBox || s.Anchor == nil || e.Point == nil {
			return s, nil
		}

		cursor := *e.Point
		s.Cursor = &cursor

		return s, nil

	case eventPointerUp:
		if s.Mode != modeBox || s.Anchor == nil || e.Point == nil {
			return s, nil
		}

		box := newBoundingBox(*s.Anchor, *e.Point)
		s.Anchor = nil
		s.Cursor = nil

		effects = append(effects, emitFilter(newBoxFilter(box)))
		effects = append(effects, drawEffect{Type: effectEnableMapDrag})

		return s, effects

	case eventClick:
		if e.Point == nil {
			return s, nil
		}

		switch s.Mode {
		case modePoint:
			// point placement completes instantly
			return s, []drawEffect{emitFilter(newPointFilter(*e.Point))}

		case modePolygon:
			s.Vertices = append(s.Vertices, *e.Point)
			return s, nil
		}

		return s, nil

	case eventDoubleClick:
		if s.Mode != modePolygon {
			return s, nil
		}

		// finalize with the vertices accumulated so far; the double-click's
		// own coordinate is not appended.  too few vertices means the
		// gesture is a no-op and the vertices are retained.
		polygon, err := newPolygonFilter(s.Vertices)
		if err != nil {
			return s, nil
		}

		s.Vertices = nil

		return s, []drawEffect{emitFilter(polygon)}
	}

	return s, nil
}

// resetSession abandons any gesture in progress.  callers on teardown paths
// use the returned effects to guarantee map panning is never left disabled.
func resetSession(s drawSession) (drawSession, []drawEffect) {
	return transition(s, drawEvent{Type: eventSetMode, Mode: modeNone})
}
