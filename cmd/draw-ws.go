package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// websocket channel for interactive map drawing: the client streams pointer
// events, the server applies the draw state machine and replies with the new
// session state, effects, and overlay instructions.

var drawUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// the SPA may be served from a different origin in development
		return true
	},
}

type drawReply struct {
	Session  drawSession  `json:"session"`
	Effects  []drawEffect `json:"effects,omitempty"`
	Overlays []overlay    `json:"overlays,omitempty"`
}

func (v *voyagerContext) drawHandler(c *gin.Context) {
	cl := clientContext{}
	cl.init(v, c)

	conn, err := drawUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cl.err("[DRAW] upgrade failed: %s", err.Error())
		return
	}

	defer conn.Close()

	cl.log("[DRAW] session opened")

	// the session is owned exclusively by this goroutine; the committed
	// filter mirrors what the host page holds, so committed overlays can be
	// redrawn alongside live feedback.
	session := drawSession{Mode: modeNone}

	var committed *spatialFilter

	for {
		var event drawEvent

		if readErr := conn.ReadJSON(&event); readErr != nil {
			cl.log("[DRAW] session closed: %s", readErr.Error())
			break
		}

		var effects []drawEffect

		session, effects = transition(session, event)

		for _, effect := range effects {
			if effect.Type == effectEmitFilter {
				committed = effect.Filter
			}
		}

		reply := drawReply{
			Session:  session,
			Effects:  effects,
			Overlays: append(renderFilter(committed), renderSession(session)...),
		}

		if writeErr := conn.WriteJSON(&reply); writeErr != nil {
			cl.err("[DRAW] write failed: %s", writeErr.Error())
			break
		}
	}

	// a mid-drag disconnect cannot deliver its re-enable effect; clients
	// restore native panning on close, the server just notes the abandon
	if _, effects := resetSession(session); len(effects) > 0 {
		cl.log("[DRAW] session ended mid-gesture")
	}
}
