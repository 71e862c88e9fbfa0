// Package cmd implements the command-line interface for avndb.
package cmd

import (
	"os"

	"github.com/avndb-cli/avndb/color"
	"github.com/avndb-cli/avndb/style"
	"github.com/avndb-cli/avndb/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// whereTarget encapsulates a localized filesystem resource and its CLI representation.
type whereTarget struct {
	name    string
	where   func() string
	argLong string
}

// wherePaths registry of all application resources with resolvable filesystem paths.
var wherePaths = []*whereTarget{
	{"Config", where.Config, "config"},
	{"Logs", where.Logs, "logs"},
	{"Cache", where.Cache, "cache"},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, n := range wherePaths {
		whereCmd.Flags().Bool(n.argLong, false, n.name+" path")
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(t *whereTarget, _ int) string {
		return t.argLong
	})...)

	whereCmd.SetOut(os.Stdout)
}

// whereCmd displays localized filesystem paths for application resources.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Display the localized filesystem paths for application-specific resources",
	Run: func(cmd *cobra.Command, args []string) {
		headerStyle := style.New().Bold(true).Foreground(color.HiPurple).Render

		for _, n := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(n.argLong)) {
				cmd.Println(n.where())
				return
			}
		}

		for i, n := range wherePaths {
			cmd.Printf("%s %s\n", headerStyle(n.name+"?"), style.Fg(color.Yellow)("--"+n.argLong))
			cmd.Println(n.where())

			if i < len(wherePaths)-1 {
				cmd.Println()
			}
		}
	},
}
