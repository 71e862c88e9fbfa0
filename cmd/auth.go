// Package cmd implements the command-line interface for avndb.
package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/avndb-cli/avndb/color"
	"github.com/avndb-cli/avndb/style"
	"github.com/avndb-cli/avndb/token"
	"github.com/avndb-cli/avndb/vndb"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authInfoCmd, authLogoutCmd)
	authCmd.SetOut(os.Stdout)
	authLoginCmd.SetOut(os.Stdout)
	authInfoCmd.SetOut(os.Stdout)
	authLogoutCmd.SetOut(os.Stdout)
}

// authCmd groups API-token management commands.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the VNDB API token",
}

// authLoginCmd prompts for a token, validates it, and stores it in the keyring.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Validate an API token and store it in the system keyring",
	Long:  "Validate an API token against the VNDB API and store it in the system keyring.\nCreate a token under \"My Profile > Applications\" on vndb.org.",
	Run: func(cmd *cobra.Command, args []string) {
		var tok string
		handleErr(survey.AskOne(&survey.Password{Message: "API token:"}, &tok, survey.WithValidator(survey.Required)))
		tok = strings.TrimSpace(tok)

		client := vndb.NewClient()
		defer client.Close()

		info, err := client.GetAuthInfo(tok)
		handleErr(err)
		if info.IsAbsent() {
			handleErr(errors.New("the token was rejected by the API"))
		}

		handleErr(token.Set(tok))
		cmd.Printf("%s logged in as %s\n",
			style.Fg(color.Green)("✓"), style.Bold(info.MustGet().Username))
	},
}

// authInfoCmd introspects the stored token.
var authInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display the owner and permissions of the stored API token",
	Run: func(cmd *cobra.Command, args []string) {
		tok, err := token.Get()
		if err != nil {
			handleErr(errors.New("no stored token, run `avndb auth login` first"))
		}

		client := vndb.NewClient()
		defer client.Close()

		info, err := client.GetAuthInfo(tok)
		handleErr(err)
		if info.IsAbsent() {
			cmd.Printf("%s the stored token is no longer valid\n", style.ErrorTitle("✗"))
			return
		}

		auth := info.MustGet()
		cmd.Printf("%s %s\n", style.Bold(auth.Username), style.Fg(color.HiPurple)(auth.ID))
		if len(auth.Permissions) > 0 {
			cmd.Printf("  %s %s\n", style.Fg(color.Blue)("permissions:"), strings.Join(auth.Permissions, ", "))
		}
	},
}

// authLogoutCmd removes the stored token.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(token.Delete())
		cmd.Printf("%s token removed\n", style.Fg(color.Green)("✓"))
	},
}
