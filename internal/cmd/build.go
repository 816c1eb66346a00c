package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hemmendinger/mdsite/internal/site"
	"github.com/hemmendinger/mdsite/internal/style"
)

// buildOpts holds options for the build command.
type buildOpts struct {
	siteFlags
	DryRun bool
	Verify bool
}

func newBuildCmd(root *rootOptions) *cobra.Command {
	opts := &buildOpts{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build every page of the site",
		Long: `Build every markdown page under the content directory into the
output directory.

Examples:
  mdsite build                      # Build with mdsite.toml in the current directory
  mdsite build --dry-run            # List the pages without writing anything
  mdsite build -c site/mdsite.toml  # Build another site
  mdsite build --verify -j 8        # Check output nesting, 8 workers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, root, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show pages that would be built")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "Check every page for well-formed HTML nesting")

	return cmd
}

func runBuild(cmd *cobra.Command, root *rootOptions, opts *buildOpts) error {
	out := cmd.OutOrStdout()

	s, err := root.loadSite(cmd, &opts.siteFlags)
	if err != nil {
		return err
	}

	pre, err := site.Preflight(s)
	if err != nil {
		return err
	}
	printWarnings(out, pre.Warnings)

	builder, err := site.NewBuilder(s, site.Options{
		DryRun: opts.DryRun,
		Verify: opts.Verify,
	}, root.log)
	if err != nil {
		return err
	}

	report, err := builder.Build(cmd.Context())
	if err != nil {
		return err
	}

	if report.DryRun {
		printDryRun(out, s, report)
		return nil
	}
	printReport(out, s, report)

	post, err := site.Postflight(s)
	if err != nil {
		return err
	}
	printWarnings(out, post.Warnings)
	return nil
}

func printDryRun(out io.Writer, s *site.Site, report *site.Report) {
	fmt.Fprintf(out, "%s Would build %d page(s) into %s:\n",
		style.Bold.Render("DRY-RUN"), len(report.Pages), relPath(s.Root, s.OutputDir))
	for _, p := range report.Pages {
		fmt.Fprintf(out, "  Would build: %s -> %s\n", p.Rel, relPath(s.OutputDir, p.Output))
	}
}

func printReport(out io.Writer, s *site.Site, report *site.Report) {
	for _, p := range report.Pages {
		if len(p.Warnings) == 0 {
			fmt.Fprintf(out, "  %s %s\n", style.OK(), p.Rel)
			continue
		}
		for _, w := range p.Warnings {
			fmt.Fprintf(out, "  %s %s: %s\n", style.Warn(), p.Rel, w)
		}
	}
	printWarnings(out, report.Warnings)

	fmt.Fprintf(out, "\n%s Built %d page(s) into %s in %s\n",
		style.Bold.Render("📊"), len(report.Pages), relPath(s.Root, s.OutputDir),
		report.Duration.Round(time.Millisecond))
	if n := len(report.Warnings) + report.PageWarnings(); n > 0 {
		fmt.Fprintf(out, "  %s\n", style.Warning.Render(fmt.Sprintf("%d warning(s)", n)))
	}
	fmt.Fprintf(out, "  %s\n", style.Dim.Render("build "+report.BuildID))
}

func printWarnings(out io.Writer, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(out, "%s %s\n", style.Warn(), w)
	}
}

// relPath shortens target for display; it falls back to target itself.
func relPath(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}
