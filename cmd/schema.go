// Package cmd implements the command-line interface for avndb.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/avndb-cli/avndb/vndb"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd dumps the API schema metadata as JSON.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Dump the API object metadata as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		client := vndb.NewClient()
		defer client.Close()

		schema, err := client.GetSchema()
		handleErr(err)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		lo.Must0(encoder.Encode(schema))
	},
}
