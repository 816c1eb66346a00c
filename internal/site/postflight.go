package site

import (
	"fmt"
	"os"
)

// PostflightReport contains the results of a postflight check.
type PostflightReport struct {
	Expected int
	Missing  []string
	Warnings []string
}

// Postflight checks a finished build: every expected page exists and the
// manifest matches the pages on disk.
func Postflight(s *Site) (*PostflightReport, error) {
	report := &PostflightReport{}

	pages, err := s.Pages()
	if err != nil {
		return nil, err
	}
	report.Expected = len(pages)

	// 1. Every source has an output page
	for _, p := range pages {
		if _, err := os.Stat(p.Output); err != nil {
			report.Missing = append(report.Missing, p.Rel)
			report.Warnings = append(report.Warnings, fmt.Sprintf("missing output for %s", p.Rel))
		}
	}

	// 2. Manifest agrees with the page count
	m, err := ReadManifest(s.OutputDir)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Failed to read manifest: %v", err))
	} else if len(m.Pages) != len(pages) {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("manifest lists %d pages, content has %d", len(m.Pages), len(pages)))
	}

	return report, nil
}
