package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hemmendinger/mdsite/internal/site"
	"github.com/hemmendinger/mdsite/internal/style"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	flags := &siteFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build the site and rebuild on every change",
		Long: `Build the site, then watch the content, static and template files
and rebuild after each burst of changes. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.loadSite(cmd, flags)
			if err != nil {
				return err
			}
			if _, err := site.Preflight(s); err != nil {
				return err
			}

			builder, err := site.NewBuilder(s, site.Options{}, root.log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Watching %s (Ctrl-C to stop)\n",
				style.Bold.Render("👀"), relPath(s.Root, s.ContentDir))

			w := site.NewWatcher(s, builder, root.log)
			return w.Run(ctx, func(report *site.Report, err error) {
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					fmt.Fprintf(out, "%s build failed: %v\n", style.Fail(), err)
					return
				}
				fmt.Fprintf(out, "%s Built %d page(s) in %s\n",
					style.OK(), len(report.Pages), report.Duration.Round(time.Millisecond))
				printWarnings(out, report.Warnings)
			})
		},
	}

	flags.register(cmd)
	return cmd
}
