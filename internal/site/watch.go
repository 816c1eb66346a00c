package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watcher rebuilds a site whenever its inputs change.
type Watcher struct {
	site     *Site
	builder  *Builder
	log      logrus.FieldLogger
	Debounce time.Duration
}

// NewWatcher creates a watcher that rebuilds with b.
func NewWatcher(s *Site, b *Builder, log logrus.FieldLogger) *Watcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{site: s, builder: b, log: log, Debounce: DefaultDebounce}
}

// Run builds once, then rebuilds after each burst of changes to the
// content, static or template files until ctx is canceled. onBuild
// receives the outcome of every build.
func (w *Watcher) Run(ctx context.Context, onBuild func(*Report, error)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range []string{w.site.ContentDir, w.site.StaticDir} {
		if err := w.addTree(fw, dir); err != nil {
			return err
		}
	}
	// Watch the template's directory; editors often replace the file.
	if err := fw.Add(filepath.Dir(w.site.TemplatePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("watching template: %w", err)
	}

	onBuild(w.builder.Build(ctx))

	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						w.log.WithError(err).Warn("watching new directory")
					}
				}
			}
			w.log.WithFields(logrus.Fields{"path": ev.Name, "op": ev.Op.String()}).Debug("change detected")
			timer.Reset(w.Debounce)
			pending = true

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watcher error")

		case <-timer.C:
			if pending {
				pending = false
				onBuild(w.builder.Build(ctx))
			}
		}
	}
}

// addTree watches dir and every directory below it. fsnotify does not
// recurse on its own. A missing dir is skipped.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path == w.site.OutputDir || (path != dir && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// relevant filters out events the build itself causes.
func (w *Watcher) relevant(path string) bool {
	if within(path, w.site.OutputDir) {
		return false
	}
	if filepath.Dir(path) == filepath.Dir(w.site.TemplatePath) &&
		!within(path, w.site.ContentDir) && !within(path, w.site.StaticDir) {
		return path == w.site.TemplatePath
	}
	return true
}
