package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

// wsEvent is one message sent by the page script.
type wsEvent struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	s.track(conn)
	defer s.untrack(conn)

	ctx := r.Context()
	initial := eventReply{
		View:   render.NewView(s.contract, sess.ctrl.State(), s.policy),
		Effect: form.EffectNone.String(),
	}
	if err := conn.WriteJSON(initial); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.DebugContext(ctx, "websocket closed", "session", sess.ID, "error", err)
			}
			return
		}

		var ev wsEvent
		var reply eventReply
		switch {
		case s.limiter != nil && !s.limiter.allow(clientIP(r)):
			s.metrics.limited.Inc()
			reply = s.hostError(sess, "form", "rate limit exceeded")
		case json.Unmarshal(data, &ev) != nil:
			reply = s.hostError(sess, "form", "malformed event")
		default:
			reply = s.dispatch(ctx, sess, ev)
		}

		if err := conn.WriteJSON(reply); err != nil {
			s.logger.DebugContext(ctx, "websocket write failed", "session", sess.ID, "error", err)
			return
		}
	}
}

func (s *Server) track(conn *websocket.Conn) {
	s.connsMu.Lock()
	s.conns[conn] = struct{}{}
	s.connsMu.Unlock()
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.connsMu.Lock()
	delete(s.conns, conn)
	s.connsMu.Unlock()
	_ = conn.Close()
}

// closeSockets ends every open WebSocket so shutdown does not wait on them.
func (s *Server) closeSockets() {
	s.connsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.connsMu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
	}
}
