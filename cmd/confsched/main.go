package main

import (
	"os"

	"confsched/cmd/confsched/commands"
	appLog "confsched/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Execute(); err != nil {
		appLog.Error("command failed", err)
		os.Exit(1)
	}
}
