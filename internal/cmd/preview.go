package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/hemmendinger/mdsite/internal/preview"
	"github.com/hemmendinger/mdsite/internal/templates"
)

func newPreviewCmd() *cobra.Command {
	var styleName string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show a markdown file formatted for the terminal",
		Long: `Show a markdown file formatted for the terminal.

On a terminal the document opens in a scrollable pager (q to quit).
Otherwise the formatted text is printed without styling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			title, err := templates.ExtractTitle(md)
			if errors.Is(err, templates.ErrNoTitle) {
				title = templates.FallbackTitle(args[0])
			}

			if f, ok := cmd.OutOrStdout().(*os.File); ok && styleName == "" {
				return preview.Show(f, title, md)
			}
			if styleName == "" {
				styleName = "notty"
			}
			return preview.Write(cmd.OutOrStdout(), md, preview.Options{Style: styleName})
		},
	}

	cmd.Flags().StringVar(&styleName, "style", "", "glamour style (dark, light, notty, ...); disables the pager")
	return cmd
}
