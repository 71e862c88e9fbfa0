// Package cmd implements the command-line interface for avndb.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/avndb-cli/avndb/color"
	"github.com/avndb-cli/avndb/style"
	"github.com/avndb-cli/avndb/vndb"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.Flags().BoolP("default-only", "d", false, "Fetch only the default fields (id and username)")
	userCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	userCmd.SetOut(os.Stdout)
}

// userCmd resolves a user by username or vndbid.
var userCmd = &cobra.Command{
	Use:     "user [username or id]",
	Short:   "Look up a VNDB user",
	Example: "  avndb user yorhel",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := vndb.NewClient()
		defer client.Close()

		var (
			found mo.Option[vndb.User]
			err   error
		)
		if lo.Must(cmd.Flags().GetBool("default-only")) {
			found, err = client.GetUserDefaultOnly(args[0])
		} else {
			found, err = client.GetUser(args[0])
		}
		handleErr(err)

		// An unknown user is an outcome, not a failure.
		if found.IsAbsent() {
			cmd.Printf("%s %s\n", style.Title("not found"), style.Faint(args[0]))
			return
		}

		user := found.MustGet()

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(user))
			return
		}

		cmd.Printf("%s %s\n", style.Bold(user.Username), style.Fg(color.HiPurple)(user.ID))
		if user.LengthVotes > 0 {
			cmd.Printf("  %s %d (%d minutes total)\n",
				style.Fg(color.Blue)("length votes:"), user.LengthVotes, user.LengthVotesSum)
		}
	},
}
