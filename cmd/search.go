// Package cmd implements the command-line interface for avndb.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avndb-cli/avndb/color"
	"github.com/avndb-cli/avndb/key"
	"github.com/avndb-cli/avndb/query"
	"github.com/avndb-cli/avndb/style"
	"github.com/avndb-cli/avndb/vndb"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceP("tag", "t", []string{}, "Tag ids the VN must carry (parent tags match too)")
	searchCmd.Flags().StringSlice("dtag", []string{}, "Tag ids matched directly, excluding parent tags")
	searchCmd.Flags().StringSliceP("lang", "l", []string{}, "Language codes the VN must be available in")
	searchCmd.Flags().StringSlice("olang", []string{}, "Original-language codes")
	searchCmd.Flags().StringSliceP("platform", "p", []string{}, "Platform codes")
	searchCmd.Flags().String("released-on", "", "Released exactly on the given YYYY-MM-DD date")
	searchCmd.Flags().String("released-after", "", "Released after the given YYYY-MM-DD date")
	searchCmd.Flags().String("released-before", "", "Released before the given YYYY-MM-DD date")
	searchCmd.MarkFlagsMutuallyExclusive("released-on", "released-after", "released-before")
	searchCmd.Flags().Int("length", 0, "Playtime-estimate bucket, 1 (very short) to 5 (very long)")
	searchCmd.Flags().IntP("limit", "n", 0, "Results per page (defaults to the search.results_limit config key)")
	searchCmd.Flags().Int("page", 1, "Page to fetch")
	searchCmd.Flags().String("sort", "", "Sort field: id, title, released, rating, votecount")
	searchCmd.Flags().Bool("reverse", false, "Invert the sort order")
	searchCmd.Flags().Bool("closest", false, "Print only the result whose title is closest to the query")
	searchCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")

	searchCmd.SetOut(os.Stdout)
}

// searchCmd runs a filtered free-text search over VN records.
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the visual novel database",
	Example: `  avndb search "saya no uta"
  avndb search "saya no uta" --tag g7 --released-after 2003-01-01`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q := strings.Join(args, " ")

		filter, err := filterFromFlags(cmd)
		handleErr(err)

		client := vndb.NewClient()
		defer client.Close()

		if lo.Must(cmd.Flags().GetBool("closest")) {
			match, err := client.FindClosest(q, filter)
			handleErr(err)
			if match.IsAbsent() {
				printNoResults(cmd, q)
				return
			}
			vn := match.MustGet()
			printVNs(cmd, []vndb.VN{vn}, lo.Must(cmd.Flags().GetBool("json")))
			_ = query.Remember(q, 1, vn.ID)
			return
		}

		limit := lo.Must(cmd.Flags().GetInt("limit"))
		if limit == 0 {
			limit = viper.GetInt(key.SearchResultsLimit)
		}

		page, err := client.SearchVNPage(q, filter, vndb.SearchParams{
			Sort:    lo.Must(cmd.Flags().GetString("sort")),
			Reverse: lo.Must(cmd.Flags().GetBool("reverse")),
			Results: limit,
			Page:    lo.Must(cmd.Flags().GetInt("page")),
		})
		handleErr(err)

		if len(page.Results) == 0 {
			printNoResults(cmd, q)
			return
		}

		_ = query.Remember(q, len(page.Results), page.Results[0].ID)
		printVNs(cmd, page.Results, lo.Must(cmd.Flags().GetBool("json")))

		if page.More {
			cmd.Println(style.Faint("more results available, pass --page to fetch them"))
		}
	},
}

// filterFromFlags assembles a vndb.VNFilter from the search command flags.
func filterFromFlags(cmd *cobra.Command) (*vndb.VNFilter, error) {
	filter := &vndb.VNFilter{
		Tag:      lo.Must(cmd.Flags().GetStringSlice("tag")),
		DTag:     lo.Must(cmd.Flags().GetStringSlice("dtag")),
		Lang:     lo.Must(cmd.Flags().GetStringSlice("lang")),
		OLang:    lo.Must(cmd.Flags().GetStringSlice("olang")),
		Platform: lo.Must(cmd.Flags().GetStringSlice("platform")),
	}

	released := map[vndb.CompareOp]string{
		vndb.OpEq: lo.Must(cmd.Flags().GetString("released-on")),
		vndb.OpGt: lo.Must(cmd.Flags().GetString("released-after")),
		vndb.OpLt: lo.Must(cmd.Flags().GetString("released-before")),
	}
	for op, date := range released {
		if date == "" {
			continue
		}
		r, err := vndb.NewReleased(op, date)
		if err != nil {
			return nil, err
		}
		filter.Released = r
	}

	if n := lo.Must(cmd.Flags().GetInt("length")); n != 0 {
		l, err := vndb.NewLength(vndb.OpEq, n)
		if err != nil {
			return nil, err
		}
		filter.Length = l
	}

	return filter, nil
}

// printNoResults reports an empty result set, offering historical suggestions
// for the query when any are close enough.
func printNoResults(cmd *cobra.Command, q string) {
	cmd.Printf("%s %s\n", style.Title("no results"), style.Faint(q))

	if suggestion := query.Suggest(q); suggestion.IsPresent() {
		s := suggestion.MustGet()
		line := fmt.Sprintf("did you mean %s?", style.Fg(color.Yellow)(s))
		if id := query.TopVN(s); id.IsPresent() {
			line += " " + style.Faint("("+id.MustGet()+")")
		}
		cmd.Println(line)
	}
}

// devStatusLabel renders the development status with its semantic color.
func devStatusLabel(status int) string {
	switch status {
	case vndb.DevStatusFinished:
		return style.Fg(color.Green)("finished")
	case vndb.DevStatusInDevelopment:
		return style.Fg(color.Yellow)("in development")
	case vndb.DevStatusCancelled:
		return style.Fg(color.Red)("cancelled")
	default:
		return style.Faint("unknown")
	}
}

func printVNs(cmd *cobra.Command, vns []vndb.VN, asJson bool) {
	if asJson {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		lo.Must0(encoder.Encode(vns))
		return
	}

	for _, vn := range vns {
		released := vn.Released
		if released == "" {
			released = "TBA"
		}

		cmd.Printf("%s %s\n", style.Bold(vn.Title), style.Fg(color.HiPurple)(vn.ID))
		cmd.Printf("  %s released %s, %s\n",
			devStatusLabel(vn.DevStatus),
			released,
			style.Faint(fmt.Sprintf("rating %.1f (%d votes)", vn.Rating, vn.VoteCount)),
		)
	}
}
