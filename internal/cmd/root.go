// Package cmd implements the mdsite command line.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hemmendinger/mdsite/internal/config"
	"github.com/hemmendinger/mdsite/internal/site"
)

// rootOptions holds the persistent flags and the logger built from them.
type rootOptions struct {
	configPath string
	verbose    bool
	logFormat  string

	log *logrus.Logger
}

// NewRootCmd builds the mdsite command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "mdsite",
		Short: "Convert markdown to HTML and build static sites",
		Long: `mdsite converts markdown documents to HTML.

A site is a directory with an optional mdsite.toml, a content directory of
.md files, an optional static directory and an HTML template with
{{ Title }} and {{ Content }} placeholders.`,
		SilenceUsage:      true,
		PersistentPreRunE: opts.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.FileName, "Path to the site config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(newConvertCmd(opts))
	root.AddCommand(newBuildCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// setup runs once before any subcommand.
func (o *rootOptions) setup(cmd *cobra.Command, args []string) error {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.WarnLevel)
	if o.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	switch o.logFormat {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !o.verbose})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", o.logFormat)
	}

	o.log = logger
	return nil
}

// siteFlags override config file values for commands that build a site.
type siteFlags struct {
	output   string
	basePath string
	workers  int
}

func (f *siteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory (overrides output_dir)")
	cmd.Flags().StringVar(&f.basePath, "base-path", "", "URL prefix for root-relative links (overrides base_path)")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "Pages built concurrently (overrides workers, 0 = one per CPU)")
}

// loadSite reads the config file and applies flag overrides.
func (o *rootOptions) loadSite(cmd *cobra.Command, f *siteFlags) (*site.Site, error) {
	cfg, err := config.LoadFromFile(o.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("output") {
		cfg.OutputDir = f.output
	}
	if cmd.Flags().Changed("base-path") {
		cfg.BasePath = f.basePath
	}
	if cmd.Flags().Changed("workers") {
		workers := f.workers
		cfg.Workers = &workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := site.New(cfg)
	if err != nil {
		return nil, err
	}
	o.log.WithFields(logrus.Fields{
		"root":    s.Root,
		"content": s.ContentDir,
		"output":  s.OutputDir,
	}).Debug("site loaded")
	return s, nil
}
