// Package main is the entry point for the watchtime application.
package main

import (
	"github.com/samber/lo"
	"github.com/watchtime-cli/watchtime/cmd"
	"github.com/watchtime-cli/watchtime/config"
	"github.com/watchtime-cli/watchtime/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
