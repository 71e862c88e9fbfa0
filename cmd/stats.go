// Package cmd implements the command-line interface for avndb.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/avndb-cli/avndb/color"
	"github.com/avndb-cli/avndb/style"
	"github.com/avndb-cli/avndb/vndb"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	statsCmd.SetOut(os.Stdout)
}

// statsCmd displays the database-wide entry counts.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display overall database statistics",
	Run: func(cmd *cobra.Command, args []string) {
		client := vndb.NewClient()
		defer client.Close()

		stats, err := client.GetStats()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(stats))
			return
		}

		rows := []struct {
			name  string
			count int
		}{
			{"Visual novels", stats.VN},
			{"Releases", stats.Releases},
			{"Producers", stats.Producers},
			{"Characters", stats.Chars},
			{"Staff", stats.Staff},
			{"Tags", stats.Tags},
			{"Traits", stats.Traits},
		}

		for _, row := range rows {
			cmd.Printf("%s %d\n", style.Fg(color.Blue)(row.name+":"), row.count)
		}
	},
}
