// Command guestbookctl inspects and maintains a guestbook store without the HTTP server.
package main

import (
	"os"

	"github.com/eventpage/guestbook/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
