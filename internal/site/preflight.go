package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hemmendinger/mdsite/internal/templates"
)

// PreflightReport contains the results of a preflight check.
type PreflightReport struct {
	Pages           int
	DefaultTemplate bool
	Warnings        []string
}

// Preflight checks that the site can be built before any output is touched.
// A missing content directory or an invalid template is an error; a
// missing static directory or template file is only a warning.
func Preflight(s *Site) (*PreflightReport, error) {
	report := &PreflightReport{}

	// 1. Content directory with at least one page
	pages, err := s.Pages()
	if err != nil {
		return nil, err
	}
	report.Pages = len(pages)
	if len(pages) == 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("no %s files in %s", MarkdownExt, s.ContentDir))
	}

	// 2. Template exists and has both placeholders
	if _, err := templates.LoadTemplate(s.TemplatePath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("template %s: %w", s.TemplatePath, err)
		}
		report.DefaultTemplate = true
		report.Warnings = append(report.Warnings, fmt.Sprintf("template %s not found, using built-in template", s.TemplatePath))
	}

	// 3. Static directory
	if info, err := os.Stat(s.StaticDir); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("static directory %s not found", s.StaticDir))
	} else if !info.IsDir() {
		report.Warnings = append(report.Warnings, fmt.Sprintf("static path %s is not a directory", s.StaticDir))
	}

	// 4. Output must not contain the inputs, or clean-output would delete them
	for _, in := range []string{s.Root, s.ContentDir, s.StaticDir} {
		if within(in, s.OutputDir) {
			return nil, fmt.Errorf("output directory %s contains %s", s.OutputDir, in)
		}
	}

	return report, nil
}

// within reports whether path is dir or lies under it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
