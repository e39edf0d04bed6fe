// File: server/server.go

// Package server exposes a spawned actor handle over a websocket endpoint:
// one JSON frame in, one JSON frame out, dispatched through the handle's
// derived operations. This is a demo surface; the engine itself has no
// network protocol.
package server

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/hollyfield/stagecraft/stage"
)

// Server bridges websocket clients to one actor handle. Each connection gets
// its own clone of the handle, so per-connection send order is FIFO.
type Server struct {
	handle *stage.Handle

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// New wraps a handle. The server takes its own clone; the caller keeps
// ownership of the handle it passed in.
func New(handle *stage.Handle) *Server {
	return &Server{
		handle: handle.Clone(),
		conns:  make(map[*websocket.Conn]bool),
	}
}

// Close releases the server's clone of the handle.
func (s *Server) Close() {
	s.handle.Close()
}

// HandleSubscribe returns the websocket handler running the per-connection
// frame loop.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		addr := ws.Request().RemoteAddr
		fmt.Printf("HandleSubscribe: new connection from %s\n", addr)

		s.track(ws, true)
		conn := s.handle.Clone()
		defer func() {
			conn.Close()
			s.track(ws, false)
			_ = ws.Close()
			fmt.Printf("HandleSubscribe: connection %s closed\n", addr)
		}()

		s.readLoop(ws, conn)
	}
}

// readLoop reads call frames until the client goes away, answering each with
// exactly one reply frame.
func (s *Server) readLoop(ws *websocket.Conn, conn *stage.Handle) {
	for {
		var frame CallFrame
		if err := websocket.JSON.Receive(ws, &frame); err != nil {
			if err != io.EOF {
				fmt.Println("readLoop: error reading from client:", err)
			}
			return
		}

		reply := s.dispatch(ws.Request().Context(), conn, frame)
		if err := websocket.JSON.Send(ws, reply); err != nil {
			fmt.Println("readLoop: error writing to client:", err)
			return
		}
	}
}

func (s *Server) track(ws *websocket.Conn, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.conns[ws] = true
	} else {
		delete(s.conns, ws)
	}
}
