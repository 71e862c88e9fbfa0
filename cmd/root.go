// Package cmd implements the command-line interface for avndb.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/avndb-cli/avndb/constant"
	"github.com/avndb-cli/avndb/key"
	"github.com/avndb-cli/avndb/log"
	"github.com/avndb-cli/avndb/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "Override the VNDB API root URL")
	lo.Must0(viper.BindPFlag(key.APIEndpoint, rootCmd.PersistentFlags().Lookup("endpoint")))
}

// rootCmd defines the entry point for the avndb application.
var rootCmd = &cobra.Command{
	Use:   constant.Avndb,
	Short: "A command-line client for the VNDB visual novel database",
	Long: constant.AsciiArtLogo + "\n" +
		style.Italic("    - A command-line client for the VNDB visual novel database"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		lo.Must0(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.ErrorTitle("✗"), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
