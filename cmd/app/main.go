package main

import (
	"os"

	"turfbook/internal/cli"
)

// @title TurfBook API
// @version 1.0
// @description Turf listings, slot booking with deposits, and live slot updates.
// @BasePath /
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name turfbook_session
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
