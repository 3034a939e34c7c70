// Package ipc implements the local control channel: a unix socket over
// which aria-ctl sends commands to the running daemon.
package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

// Request is one control command. Text carries the payload for
// commands that take one, like "say".
type Request struct {
	Cmd  string `json:"cmd"`
	Text string `json:"text,omitempty"`
}

// Response is the daemon's reply.
type Response struct {
	OK   bool   `json:"ok"`
	Text string `json:"text,omitempty"`
}

// Handler processes one request and produces the reply.
type Handler func(Request) Response

// Server owns the listening socket.
type Server struct {
	ln   net.Listener
	path string
}

// Serve binds the unix socket at path and handles connections in the
// background, one request and one reply per connection.
func Serve(path string, handler Handler) (*Server, error) {
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	s := &Server{ln: ln, path: path}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go handleConn(conn, handler)
		}
	}()
	return s, nil
}

// Close stops accepting and removes the socket file.
func (s *Server) Close() error {
	err := s.ln.Close()
	os.Remove(s.path)
	return err
}

func handleConn(conn net.Conn, handler Handler) {
	defer conn.Close()

	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		return
	}
	json.NewEncoder(conn).Encode(handler(req))
}

// Send delivers one request to the daemon at path and waits for the
// reply.
func Send(path string, req Request) (Response, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return Response{}, err
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return Response{}, err
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}
