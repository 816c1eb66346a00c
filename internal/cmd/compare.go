package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hemmendinger/mdsite/internal/compare"
	"github.com/hemmendinger/mdsite/internal/style"
)

func newCompareCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Compare mdsite output with a CommonMark renderer",
		Long: `Render a document with mdsite and with goldmark, a CommonMark
implementation, and print both along with whether their visible text matches.

Reads from stdin when no file is given. With --check the command fails when
the text differs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			res, err := compare.Compare(md)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n\n", style.Bold.Render("mdsite:"), res.Ours)
			fmt.Fprintf(out, "%s\n%s\n", style.Bold.Render("goldmark:"), res.Reference)

			if res.TextEqual() {
				fmt.Fprintf(out, "%s text matches\n", style.OK())
				return nil
			}
			fmt.Fprintf(out, "%s text differs\n", style.Fail())
			fmt.Fprintf(out, "  mdsite:   %s\n", style.Dim.Render(res.OursText))
			fmt.Fprintf(out, "  goldmark: %s\n", style.Dim.Render(res.ReferenceText))
			if check {
				return fmt.Errorf("rendered text differs from goldmark")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Exit with an error when the text differs")
	return cmd
}
