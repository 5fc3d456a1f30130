package pkg

import (
	"log"
	"os"

	petname "github.com/dustinkirkland/golang-petname"
)

// InitLog sends the standard logger to dest, the terminal being owned by the
// board UI
func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}

// NewName returns a readable random name for views and sessions
func NewName() string {
	return petname.Generate(2, "-")
}
