package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hemmendinger/mdsite/internal/document"
	"github.com/hemmendinger/mdsite/internal/render"
)

func newConvertCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert one markdown document to HTML",
		Long: `Convert a markdown document to an HTML string and print it.

Reads from stdin when no file is given. The output is the bare document
tree; no page template is applied.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out, err := render.Render(document.Build(md))
			if err != nil {
				return err
			}
			opts.log.WithField("bytes", len(out)).Debug("converted")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// readInput returns the named file's contents, or stdin when args is empty.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
