// Package main is the entry point for the avndb application.
package main

import (
	"github.com/avndb-cli/avndb/cmd"
	"github.com/avndb-cli/avndb/config"
	"github.com/avndb-cli/avndb/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
