package main

import (
	"log"
	"os"

	"github.com/amterp/cutejson/internal/cli"
)

// Set at build time via -ldflags "-X main.version=...".
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

func main() {
	logger := log.New(os.Stderr, "cutejson: ", 0)
	err := cli.Run(os.Args[1:], cli.Options{
		BuildInfo: cli.BuildInfo{
			Version:   version,
			Commit:    commit,
			BuildDate: buildDate,
		},
	})
	if err != nil {
		logger.Fatalf("error: %v", err)
	}
}
