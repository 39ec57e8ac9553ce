package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/ref-stats/internal/cli"
)

func main() {
	// Best-effort .env load so the API key can live next to the data files.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}
}
