// internal/httpserver/ws.go
//
// GET /puzzle/{id}/ws streams the session state to the client and accepts
// action envelopes over the same socket.
//
// Messages sent:     {"type":"state","state":{...}} | {"type":"error","error":"..."}
// Messages accepted: {"type":"SELECT_CARD","payload":{"id":"..."}} (game.DecodeAction)
//
// The engine observer runs while the session lock is held, so it only queues
// the state; a single writer goroutine owns the connection's write side.

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/stevenpuente/six-words/internal/game"
)

const (
	wsWriteWait  = 10 * time.Second
	wsQueueDepth = 16
)

type wsMessage struct {
	Type  string      `json:"type"`
	State *game.State `json:"state,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == s.cfg.ClientOrigin
		},
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.ownedSession(w, r)
	if !ok {
		return
	}
	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	out := make(chan wsMessage, wsQueueDepth)
	var cancel func()
	_ = sess.Do(func(e *game.Engine) error {
		cancel = e.Subscribe(func(st game.State) { enqueue(out, wsMessage{Type: "state", State: &st}) })
		st := e.State()
		out <- wsMessage{Type: "state", State: &st}
		return nil
	})
	defer func() { _ = sess.Do(func(*game.Engine) error { cancel(); return nil }) }()

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		// closing the connection unblocks the reader below
		defer conn.Close()
		for {
			select {
			case <-ctx.Done():
				return nil
			case m := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteJSON(m); err != nil {
					return err
				}
			}
		}
	})
	g.Go(func() error {
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return err
			}
			a, err := game.DecodeAction(raw)
			if err != nil {
				enqueue(out, wsMessage{Type: "error", Error: "bad_action"})
				continue
			}
			// the observer pushes the new state
			if _, err := s.dispatch(r.Context(), sess, a); err != nil {
				enqueue(out, wsMessage{Type: "error", Error: actionErrorCode(err)})
			}
		}
	})
	if err := g.Wait(); err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Debug().Err(err).Str("gameId", sess.ID).Msg("websocket closed")
	}
}

// enqueue never blocks; when the client lags, the oldest queued message is dropped.
func enqueue(out chan wsMessage, m wsMessage) {
	for {
		select {
		case out <- m:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
