//go:build !windows
// +build !windows

package pkg

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"syscall"
	"unsafe"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
)

// Server serves the board viewer over ssh. Every session runs its own viewer
// process on a pseudo-terminal.
type Server struct {
	*ssh.Server
	Binary string   // viewer executable
	Args   []string // viewer arguments, usually the document path
}

func setWinsize(f *os.File, w, h int) {
	syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uintptr(syscall.TIOCSWINSZ),
		uintptr(unsafe.Pointer(&struct{ h, w, x, y uint16 }{uint16(h), uint16(w), 0, 0})))
}

// NewServer listens on addr and signs with the private key in hostKeyFile
func NewServer(addr, hostKeyFile, binary string, args ...string) (*Server, error) {
	signer, err := LoadHostKey(hostKeyFile)
	if err != nil {
		return nil, err
	}
	server := &Server{Binary: binary, Args: args}
	server.Server = &ssh.Server{
		Addr:        addr,
		IdleTimeout: ServerIdleTimeout,
		Handler:     server.handle,
	}
	server.AddHostKey(signer)
	return server, nil
}

// Command builds the viewer command of a session
func (s *Server) Command(ctx context.Context, term, name string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.Binary, s.Args...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("TERM=%s", term),
		fmt.Sprintf("CHESSVIEW_SESSION=%s", name))
	return cmd
}

func (s *Server) handle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	name := NewName()
	log.Printf("session %s opened by %s from %s", name, sess.User(), sess.RemoteAddr())
	defer log.Printf("session %s closed", name)

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := s.Command(cmdCtx, ptyReq.Term, name)
	f, err := pty.Start(cmd)
	if err != nil {
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	setWinsize(f, ptyReq.Window.Width, ptyReq.Window.Height)
	go func() {
		for win := range winCh {
			setWinsize(f, win.Width, win.Height)
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	cmd.Wait()
}
