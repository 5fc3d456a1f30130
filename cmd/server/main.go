package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qnkhuat/chessview/pkg"
)

func main() {
	logPath := flag.String("log", "./log", "path to log file")
	addr := flag.String("addr", pkg.SshPort, "address to listen on")
	hostKey := flag.String("key", "./host_key", "path to the PEM host key")
	binary := flag.String("bin", "chessview", "viewer executable run for every session")
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatalf("usage: %s [flags] DOCUMENT [viewer flags]", os.Args[0])
	}

	pkg.InitLog(*logPath, "SERVER: ")
	// sessions log next to the server
	args := append([]string{"-log", *logPath}, flag.Args()[1:]...)
	args = append(args, flag.Arg(0))

	s, err := pkg.NewServer(*addr, *hostKey, *binary, args...)
	if err != nil {
		log.Panic(err)
	}

	go func() {
		log.Printf("Listening at %s", *addr)
		if err := s.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	// Wait for teminate signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Println("Server stopped")
	s.Close()
}
