package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mapkeeper/mapkeeper-cli/internal/adapters/driving/cli"
)

// version is stamped in at build time via -ldflags.
var version = "dev"

func main() {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
