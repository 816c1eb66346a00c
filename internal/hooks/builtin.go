package hooks

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Builtin hook names.
const (
	BuiltinCleanOutput = "clean-output"
	BuiltinCopyStatic  = "copy-static"
)

// reservedPrefix marks output entries owned by the build itself (lock file,
// manifest). clean-output leaves them in place.
const reservedPrefix = ".mdsite"

// BuiltinHookFunc is a function that executes a built-in hook.
type BuiltinHookFunc func(ctx HookContext) HookResult

// builtinHooks maps builtin hook names to their implementation functions.
var builtinHooks = map[string]BuiltinHookFunc{
	BuiltinCleanOutput: cleanOutput,
	BuiltinCopyStatic:  copyStatic,
}

func lookupBuiltin(name string) (BuiltinHookFunc, bool) {
	fn, ok := builtinHooks[name]
	return fn, ok
}

// cleanOutput empties the output directory before pages are written.
// Blocks the build if the output directory would swallow the site root.
func cleanOutput(ctx HookContext) HookResult {
	start := time.Now()

	out := filepath.Clean(ctx.OutputDir)
	if ctx.OutputDir == "" || out == string(filepath.Separator) {
		return BlockOperation(fmt.Sprintf("refusing to clean output directory %q", ctx.OutputDir), time.Since(start))
	}
	if ctx.SiteRoot != "" {
		if root, err := filepath.Abs(ctx.SiteRoot); err == nil {
			if abs, err := filepath.Abs(out); err == nil && strings.HasPrefix(root+string(filepath.Separator), abs+string(filepath.Separator)) {
				return BlockOperation(fmt.Sprintf("output directory %s contains the site root", out), time.Since(start))
			}
		}
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		if os.IsNotExist(err) {
			return Success("no output directory", time.Since(start))
		}
		return Failure(fmt.Errorf("reading output directory: %w", err), time.Since(start))
	}

	removed := 0
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), reservedPrefix) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(out, entry.Name())); err != nil {
			return Failure(fmt.Errorf("removing %s: %w", entry.Name(), err), time.Since(start))
		}
		removed++
	}

	return Success(fmt.Sprintf("removed %d entries", removed), time.Since(start))
}

// copyStatic copies the static directory into the output directory,
// preserving relative paths. A missing static directory is not an error.
func copyStatic(ctx HookContext) HookResult {
	start := time.Now()

	if ctx.StaticDir == "" {
		return Success("no static directory configured", time.Since(start))
	}
	if _, err := os.Stat(ctx.StaticDir); err != nil {
		if os.IsNotExist(err) {
			return Success("no static directory", time.Since(start))
		}
		return Failure(fmt.Errorf("accessing static directory: %w", err), time.Since(start))
	}

	copied := 0
	err := filepath.WalkDir(ctx.StaticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Ctx != nil {
			if err := ctx.Ctx.Err(); err != nil {
				return err
			}
		}
		rel, err := filepath.Rel(ctx.StaticDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(ctx.OutputDir, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0755)
		}
		if err := copyFile(path, dst); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return Failure(fmt.Errorf("copying static files: %w", err), time.Since(start))
	}

	return Success(fmt.Sprintf("copied %d static files", copied), time.Since(start))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// GetBuiltinNames returns the sorted names of all registered built-in hooks.
func GetBuiltinNames() []string {
	names := make([]string, 0, len(builtinHooks))
	for name := range builtinHooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
