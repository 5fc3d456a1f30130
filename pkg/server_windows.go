//go:build windows
// +build windows

package pkg

import "errors"

// Serving over ssh needs a pseudo-terminal, which Windows lacks
var ErrServerUnsupported = errors.New("ssh server is unsupported on Windows")

type Server struct{}

func NewServer(addr, hostKeyFile, binary string, args ...string) (*Server, error) {
	return nil, ErrServerUnsupported
}

func (s *Server) ListenAndServe() error {
	return ErrServerUnsupported
}

func (s *Server) Close() error {
	return nil
}
