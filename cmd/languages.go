package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zjrosen/mrdiff/internal/highlight"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the file patterns that get syntax highlighting",
	Long: `List every file pattern mrdiff maps to a language. Language ids in the
first column are the values highlight.disabled_languages accepts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "LANGUAGE\tPATTERN")
		for _, m := range highlight.Languages() {
			fmt.Fprintf(tw, "%s\t%s\n", m.Language, m.Pattern)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
