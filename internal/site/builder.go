package site

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hemmendinger/mdsite/internal/hooks"
	"github.com/hemmendinger/mdsite/internal/render"
	"github.com/hemmendinger/mdsite/internal/templates"
)

// Options control a single build.
type Options struct {
	// DryRun lists the pages that would be built without writing anything.
	DryRun bool

	// Verify checks every rendered body for well-formed nesting.
	Verify bool

	// Workers bounds concurrent page builds. <= 0 uses the config value.
	Workers int
}

// PageResult describes one built page.
type PageResult struct {
	Page
	Title    string   `json:"title"`
	Bytes    int      `json:"bytes"`
	Warnings []string `json:"warnings,omitempty"`
}

// Report summarizes a build.
type Report struct {
	BuildID  string
	DryRun   bool
	Started  time.Time
	Duration time.Duration
	Pages    []PageResult
	Warnings []string
}

// PageWarnings counts warnings across all pages.
func (r *Report) PageWarnings() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p.Warnings)
	}
	return n
}

// Manifest is written to ManifestFileName after a successful build.
type Manifest struct {
	BuildID   string       `json:"build_id"`
	Generated time.Time    `json:"generated"`
	Pages     []PageResult `json:"pages"`
}

// Builder turns a Site into HTML files.
type Builder struct {
	site  *Site
	hooks *hooks.HookRunner
	log   logrus.FieldLogger
	opts  Options
}

// NewBuilder loads the site's hooks and prepares a builder. The
// clean-output and copy-static builtins run ahead of configured
// pre-build hooks.
func NewBuilder(s *Site, opts Options, log logrus.FieldLogger) (*Builder, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	runner, err := hooks.NewHookRunner(s.Root)
	if err != nil {
		return nil, err
	}
	runner.SetLogger(log)

	builtins := []hooks.HookConfig{{Type: hooks.HookTypeBuiltin, Builtin: hooks.BuiltinCopyStatic}}
	if s.Config.GetCleanOutput() {
		builtins = append([]hooks.HookConfig{{Type: hooks.HookTypeBuiltin, Builtin: hooks.BuiltinCleanOutput}}, builtins...)
	}
	runner.Prepend(hooks.EventPreBuild, builtins...)

	if opts.Workers <= 0 {
		opts.Workers = s.Config.GetWorkers()
	}
	if !opts.Verify {
		opts.Verify = s.Config.VerifyOutput
	}

	return &Builder{site: s, hooks: runner, log: log, opts: opts}, nil
}

// Build renders every page. The output directory is locked for the
// duration so concurrent builds of the same site fail fast.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report := &Report{
		BuildID: uuid.NewString(),
		DryRun:  b.opts.DryRun,
		Started: time.Now(),
	}
	log := b.log.WithField("build_id", report.BuildID)

	pages, err := b.site.Pages()
	if err != nil {
		return nil, err
	}
	tmpl, err := b.site.Template()
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	log.WithFields(logrus.Fields{
		"pages":    len(pages),
		"template": tmpl.Name,
		"workers":  b.opts.Workers,
	}).Debug("starting build")

	if b.opts.DryRun {
		for _, p := range pages {
			report.Pages = append(report.Pages, PageResult{Page: p})
		}
		report.Duration = time.Since(report.Started)
		return report, nil
	}

	if err := os.MkdirAll(b.site.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	lock := flock.New(filepath.Join(b.site.OutputDir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring build lock: %w", err)
	}
	if !locked {
		return nil, ErrBuildLocked
	}
	defer func() { _ = lock.Unlock() }()

	hctx := b.hookContext(ctx, hooks.EventPreBuild, "")
	results := b.hooks.Fire(hctx)
	if blocked, ok := hooks.Blocked(results); ok {
		return nil, fmt.Errorf("%w: %s", ErrBuildBlocked, blocked.Message)
	}
	report.Warnings = append(report.Warnings, hookWarnings(results)...)

	report.Pages = make([]PageResult, len(pages))
	var hookMu sync.Mutex
	var pageHookWarnings []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Workers)
	for i, p := range pages {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := b.buildPage(p, tmpl)
			if err != nil {
				return err
			}
			report.Pages[i] = *res

			if w := hookWarnings(b.hooks.Fire(b.hookContext(gctx, hooks.EventPostPage, p.Output))); len(w) > 0 {
				hookMu.Lock()
				pageHookWarnings = append(pageHookWarnings, w...)
				hookMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	report.Warnings = append(report.Warnings, pageHookWarnings...)

	if err := b.writeManifest(report); err != nil {
		return nil, err
	}

	report.Warnings = append(report.Warnings, hookWarnings(b.hooks.Fire(b.hookContext(ctx, hooks.EventPostBuild, "")))...)
	report.Duration = time.Since(report.Started)

	log.WithFields(logrus.Fields{
		"pages":    len(report.Pages),
		"warnings": len(report.Warnings) + report.PageWarnings(),
		"duration": report.Duration,
	}).Info("build complete")
	return report, nil
}

// buildPage renders and writes one page.
func (b *Builder) buildPage(p Page, tmpl *templates.Page) (*PageResult, error) {
	data, err := os.ReadFile(p.Source)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.Rel, err)
	}

	out, err := b.site.RenderPage(string(data), p.Rel, tmpl)
	if err != nil {
		return nil, err
	}

	res := &PageResult{Page: p, Title: out.Title, Bytes: len(out.HTML)}
	log := b.log.WithField("page", p.Rel)
	if out.FallbackTitle {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no h1 title, using %q", out.Title))
	}
	if b.opts.Verify {
		if err := render.Verify(out.Body); err != nil {
			res.Warnings = append(res.Warnings, err.Error())
		}
	}
	for _, w := range res.Warnings {
		log.Warn(w)
	}

	if err := os.MkdirAll(filepath.Dir(p.Output), 0755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", p.Rel, err)
	}
	if err := os.WriteFile(p.Output, []byte(out.HTML), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", p.Rel, err)
	}
	log.WithField("output", p.Output).Debug("page written")
	return res, nil
}

func (b *Builder) writeManifest(report *Report) error {
	m := Manifest{
		BuildID:   report.BuildID,
		Generated: report.Started.UTC(),
		Pages:     report.Pages,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.site.OutputDir, ManifestFileName), data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func (b *Builder) hookContext(ctx context.Context, event hooks.EventType, page string) hooks.HookContext {
	return hooks.HookContext{
		EventType: event,
		SiteRoot:  b.site.Root,
		OutputDir: b.site.OutputDir,
		StaticDir: b.site.StaticDir,
		Page:      page,
		Ctx:       ctx,
	}
}

// hookWarnings turns failed hook results into report warnings.
func hookWarnings(results []hooks.HookResult) []string {
	var out []string
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r.Message)
		}
	}
	return out
}

// ReadManifest loads the manifest of the last build in outputDir.
func ReadManifest(outputDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, ManifestFileName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
