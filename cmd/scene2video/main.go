package main

import (
	"log"
	"os"

	"github.com/ivlev/scene2video/internal/cli"
)

var version = "dev"

func main() {
	log.SetFlags(0)

	cmd := cli.NewRootCommand(version)
	if err := cmd.Execute(); err != nil {
		log.Printf("[-] %v", err)
		os.Exit(cli.GetExitCode(err))
	}
}
