package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v5"

	"github.com/san-kum/mechsim/internal/physics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type command struct {
	Type string `json:"type"`
}

type wsError struct {
	Error string `json:"error"`
}

// stream is one running Service.Stream feeding frames to the writer.
type stream struct {
	cancel context.CancelFunc
	frames chan *physics.WorldSnapshot
	done   chan error
}

func (s *Server) startStream(ctx context.Context) *stream {
	ctx, cancel := context.WithCancel(ctx)
	st := &stream{
		cancel: cancel,
		frames: make(chan *physics.WorldSnapshot),
		done:   make(chan error, 1),
	}
	go func() {
		st.done <- s.svc.Stream(ctx, s.cfg.Tick, func(snap *physics.WorldSnapshot) bool {
			select {
			case st.frames <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return st
}

// stop cancels the stream and waits for its goroutine to return.
func (st *stream) stop() {
	st.cancel()
	<-st.done
}

// handleWS reads commands on one goroutine and does every write from the
// handler goroutine, so a connection never has two writers.
func (s *Server) handleWS(c *echo.Context) error {
	conn, err := upgrader.Upgrade((*c).Response(), (*c).Request(), nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	cmds := make(chan command)
	done := make(chan struct{})
	defer close(done)
	go s.readPump(conn, cmds, done)

	s.writePump((*c).Request().Context(), conn, cmds)
	return nil
}

func (s *Server) readPump(conn *websocket.Conn, cmds chan<- command, done <-chan struct{}) {
	defer close(cmds)

	conn.SetReadLimit(maxMessage)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		var cmd command
		if err := json.Unmarshal(data, &cmd); err != nil {
			cmd = command{Type: "invalid"}
		}
		select {
		case cmds <- cmd:
		case <-done:
			return
		}
	}
}

func (s *Server) writePump(ctx context.Context, conn *websocket.Conn, cmds <-chan command) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	var live *stream
	var frames <-chan *physics.WorldSnapshot
	var ended <-chan error
	stopStream := func() {
		if live != nil {
			live.stop()
			live, frames, ended = nil, nil, nil
		}
	}
	defer stopStream()

	for {
		var msg any
		select {
		case cmd, ok := <-cmds:
			if !ok {
				return
			}
			switch cmd.Type {
			case "step":
				snap, err := s.svc.StepOnce()
				msg = wsReply(snap, err)
			case "start":
				if live == nil {
					live = s.startStream(ctx)
					frames, ended = live.frames, live.done
				}
				continue
			case "stop":
				stopStream()
				if err := s.svc.Stop(); err != nil {
					msg = wsError{Error: err.Error()}
					break
				}
				msg = statusResponse{Status: "stopped"}
			case "reset":
				stopStream()
				snap, err := s.svc.Reset()
				msg = wsReply(snap, err)
			default:
				msg = wsError{Error: "unknown command " + cmd.Type}
			}

		case snap := <-frames:
			msg = wsReply(snap, nil)

		case err := <-ended:
			// Stream returned on its own: max time, no simulation, or ctx.
			live.cancel()
			live, frames, ended = nil, nil, nil
			if err == nil || errors.Is(err, context.Canceled) {
				continue
			}
			msg = wsError{Error: err.Error()}

		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		if !s.writeMessage(conn, msg) {
			return
		}
	}
}

// writeMessage encodes msg before writing. A frame that cannot be encoded
// is replaced by an error message.
func (s *Server) writeMessage(conn *websocket.Conn, msg any) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Warn("websocket encode failed", "error", err)
		data, _ = json.Marshal(wsError{Error: "encode frame: " + err.Error()})
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Debug("websocket write failed", "error", err)
		return false
	}
	return true
}

func wsReply(snap *physics.WorldSnapshot, err error) any {
	if err != nil {
		return wsError{Error: err.Error()}
	}
	return simulationResponse{Success: true, WorldState: snap}
}
