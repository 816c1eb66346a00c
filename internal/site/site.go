// Package site discovers a site's markdown pages and builds them to HTML.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hemmendinger/mdsite/internal/config"
	"github.com/hemmendinger/mdsite/internal/document"
	"github.com/hemmendinger/mdsite/internal/render"
	"github.com/hemmendinger/mdsite/internal/templates"
)

// Common errors
var (
	ErrContentNotFound = errors.New("content directory not found")
	ErrBuildLocked     = errors.New("another build holds the output lock")
	ErrBuildBlocked    = errors.New("build blocked by pre-build hook")
)

// Files the build writes into the output directory besides pages.
const (
	LockFileName     = ".mdsite.lock"
	ManifestFileName = ".mdsite-build.json"
)

// MarkdownExt is the extension of source pages.
const MarkdownExt = ".md"

// Site is a configured site with absolute input and output paths.
type Site struct {
	Root         string
	ContentDir   string
	StaticDir    string
	OutputDir    string
	TemplatePath string
	BasePath     string

	Config *config.Config
}

// Page maps one markdown source to its HTML output.
type Page struct {
	// Source is the absolute markdown path.
	Source string `json:"source"`

	// Rel is Source relative to the content directory, slash separated.
	Rel string `json:"rel"`

	// Output is the absolute HTML path.
	Output string `json:"output"`
}

// New resolves cfg's paths against its root.
func New(cfg *config.Config) (*Site, error) {
	root, err := filepath.Abs(cfg.Root())
	if err != nil {
		return nil, fmt.Errorf("resolving site root: %w", err)
	}
	cfg.SetRoot(root)

	return &Site{
		Root:         root,
		ContentDir:   cfg.Resolve(cfg.ContentDir),
		StaticDir:    cfg.Resolve(cfg.StaticDir),
		OutputDir:    cfg.Resolve(cfg.OutputDir),
		TemplatePath: cfg.Resolve(cfg.Template),
		BasePath:     cfg.GetBasePath(),
		Config:       cfg,
	}, nil
}

// Pages returns every markdown file under the content directory in
// lexical order. Hidden directories and the output directory are skipped.
func (s *Site) Pages() ([]Page, error) {
	info, err := os.Stat(s.ContentDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, s.ContentDir)
	}

	var pages []Page
	err = filepath.WalkDir(s.ContentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.ContentDir && (strings.HasPrefix(d.Name(), ".") || path == s.OutputDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != MarkdownExt {
			return nil
		}
		rel, err := filepath.Rel(s.ContentDir, path)
		if err != nil {
			return err
		}
		pages = append(pages, Page{
			Source: path,
			Rel:    filepath.ToSlash(rel),
			Output: s.OutputPath(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content: %w", err)
	}
	return pages, nil
}

// OutputPath maps a content-relative markdown path to its HTML file.
func (s *Site) OutputPath(rel string) string {
	rel = strings.TrimSuffix(filepath.FromSlash(rel), MarkdownExt) + ".html"
	return filepath.Join(s.OutputDir, rel)
}

// Template loads the configured page template. A missing file falls back
// to the built-in template; an invalid one is an error.
func (s *Site) Template() (*templates.Page, error) {
	tmpl, err := templates.LoadTemplate(s.TemplatePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return templates.Default(), nil
		}
		return nil, err
	}
	return tmpl, nil
}

// Rendered is one page converted to HTML.
type Rendered struct {
	Title string
	Body  string
	HTML  string

	// FallbackTitle is set when the document had no h1 line.
	FallbackTitle bool
}

// RenderPage converts markdown to a full HTML page using tmpl.
func (s *Site) RenderPage(markdown, rel string, tmpl *templates.Page) (*Rendered, error) {
	body, err := render.Render(document.Build(markdown))
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", rel, err)
	}

	out := &Rendered{Body: body}
	out.Title, err = templates.ExtractTitle(markdown)
	if errors.Is(err, templates.ErrNoTitle) {
		out.Title = templates.FallbackTitle(rel)
		out.FallbackTitle = true
	}

	out.HTML = templates.RewriteBasePath(tmpl.Fill(out.Title, body), s.BasePath)
	return out, nil
}
