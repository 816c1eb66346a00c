package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeHooksConfig writes .mdsite/hooks.yaml under root.
func writeHooksConfig(t *testing.T, root, body string) {
	t.Helper()
	dir := filepath.Join(root, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s directory: %v", ConfigDir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestNewHookRunner(t *testing.T) {
	tmpDir := t.TempDir()

	runner, err := NewHookRunner(tmpDir)
	if err != nil {
		t.Fatalf("NewHookRunner failed: %v", err)
	}

	if runner.siteRoot != tmpDir {
		t.Errorf("expected siteRoot %q, got %q", tmpDir, runner.siteRoot)
	}

	if runner.config == nil {
		t.Fatal("config should not be nil")
	}
	if runner.HasHooks(EventPreBuild) {
		t.Error("expected no pre-build hooks without a config file")
	}
}

func TestNewHookRunnerWithConfig(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, `
hooks:
  post-build:
    - type: command
      cmd: echo 'built'
      timeout: 10
`)

	runner, err := NewHookRunner(tmpDir)
	if err != nil {
		t.Fatalf("NewHookRunner failed: %v", err)
	}

	if !runner.HasHooks(EventPostBuild) {
		t.Error("expected post-build hooks to be loaded")
	}

	hooks := runner.GetHooks(EventPostBuild)
	if len(hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(hooks))
	}
	if hooks[0].Type != HookTypeCommand {
		t.Errorf("expected type %q, got %q", HookTypeCommand, hooks[0].Type)
	}
}

func TestNewHookRunnerRejectsUnknownEvent(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, `
hooks:
  pre-deploy:
    - type: command
      cmd: "true"
`)

	_, err := NewHookRunner(tmpDir)
	if err == nil {
		t.Fatal("expected error for unknown event")
	}
	if !strings.Contains(err.Error(), "pre-deploy") {
		t.Errorf("error = %v, want it to name the event", err)
	}
}

func TestNewHookRunnerInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, "hooks: [unclosed")

	if _, err := NewHookRunner(tmpDir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFireCommandHookEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, `
hooks:
  post-page:
    - type: command
      cmd: echo "$MDSITE_EVENT|$MDSITE_OUTPUT|$MDSITE_PAGE"
`)

	runner, err := NewHookRunner(tmpDir)
	if err != nil {
		t.Fatalf("NewHookRunner failed: %v", err)
	}

	results := runner.Fire(HookContext{
		EventType: EventPostPage,
		SiteRoot:  tmpDir,
		OutputDir: "/out",
		Page:      "/out/index.html",
		Ctx:       context.Background(),
	})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("expected no error, got %v", results[0].Err)
	}

	want := "post-page|/out|/out/index.html"
	if got := strings.TrimSpace(results[0].Message); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFireCommandFailure(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, `
hooks:
  post-build:
    - type: command
      cmd: exit 3
`)

	runner, err := NewHookRunner(tmpDir)
	if err != nil {
		t.Fatalf("NewHookRunner failed: %v", err)
	}

	results := runner.Fire(HookContext{EventType: EventPostBuild, Ctx: context.Background()})
	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("expected one failed result, got %+v", results)
	}
	if results[0].Block {
		t.Error("a failed post-build hook should not block")
	}
}

func TestFireBuiltinHook(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, `
hooks:
  pre-build:
    - type: builtin
      builtin: copy-static
`)

	runner, err := NewHookRunner(tmpDir)
	if err != nil {
		t.Fatalf("NewHookRunner failed: %v", err)
	}

	results := runner.Fire(HookContext{
		EventType: EventPreBuild,
		SiteRoot:  tmpDir,
		OutputDir: filepath.Join(tmpDir, "public"),
		StaticDir: filepath.Join(tmpDir, "static"),
		Ctx:       context.Background(),
	})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("expected no error, got %v", results[0].Err)
	}
}

func TestNewHookRunnerRejectsUnknownBuiltin(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, `
hooks:
  post-build:
    - type: builtin
      builtin: does-not-exist
`)

	_, err := NewHookRunner(tmpDir)
	if err == nil {
		t.Fatal("expected error for unknown builtin")
	}
	for _, want := range []string{"does-not-exist", BuiltinCleanOutput, BuiltinCopyStatic} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error = %v, want it to mention %q", err, want)
		}
	}
}

func TestFireUnknownBuiltin(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, `
hooks:
  post-build:
    - type: script
`)

	runner, err := NewHookRunner(tmpDir)
	if err != nil {
		t.Fatalf("NewHookRunner failed: %v", err)
	}
	runner.Prepend(EventPostBuild, HookConfig{Type: HookTypeBuiltin, Builtin: "does-not-exist"})

	results := runner.Fire(HookContext{EventType: EventPostBuild})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Err == nil {
			t.Errorf("result %d: expected error", i)
		}
	}
}

func TestFireMultipleHooksStopsOnBlock(t *testing.T) {
	tmpDir := t.TempDir()

	writeHooksConfig(t, tmpDir, `
hooks:
  pre-build:
    - type: builtin
      builtin: clean-output
    - type: command
      cmd: "true"
`)

	runner, err := NewHookRunner(tmpDir)
	if err != nil {
		t.Fatalf("NewHookRunner failed: %v", err)
	}

	// clean-output blocks when no output directory is set.
	results := runner.Fire(HookContext{EventType: EventPreBuild, Ctx: context.Background()})

	// Should only get 1 result because the first hook blocks
	if len(results) != 1 {
		t.Errorf("expected 1 result (second hook should not run), got %d", len(results))
	}
	if !results[0].Block {
		t.Error("expected first hook to block")
	}
}

func TestFireWithTimeout(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, `
hooks:
  post-build:
    - type: command
      cmd: sleep 5
      timeout: 1
`)

	runner, err := NewHookRunner(tmpDir)
	if err != nil {
		t.Fatalf("NewHookRunner failed: %v", err)
	}

	start := time.Now()
	results := runner.Fire(HookContext{EventType: EventPostBuild, Ctx: context.Background()})
	elapsed := time.Since(start)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Error("expected timeout error")
	}
	if elapsed > 3*time.Second {
		t.Errorf("timeout did not trigger in time: took %v", elapsed)
	}
}

func TestPrepend(t *testing.T) {
	tmpDir := t.TempDir()
	writeHooksConfig(t, tmpDir, `
hooks:
  pre-build:
    - type: command
      cmd: "true"
`)

	runner, err := NewHookRunner(tmpDir)
	if err != nil {
		t.Fatalf("NewHookRunner failed: %v", err)
	}

	runner.Prepend(EventPreBuild,
		HookConfig{Type: HookTypeBuiltin, Builtin: BuiltinCleanOutput},
		HookConfig{Type: HookTypeBuiltin, Builtin: BuiltinCopyStatic},
	)

	hooks := runner.GetHooks(EventPreBuild)
	if len(hooks) != 3 {
		t.Fatalf("expected 3 hooks, got %d", len(hooks))
	}
	got := []string{hooks[0].Builtin, hooks[1].Builtin, hooks[2].Cmd}
	want := []string{BuiltinCleanOutput, BuiltinCopyStatic, "true"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hooks[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsPreEvent(t *testing.T) {
	tests := []struct {
		event    EventType
		expected bool
	}{
		{EventPreBuild, true},
		{EventPostPage, false},
		{EventPostBuild, false},
	}

	for _, tt := range tests {
		result := isPreEvent(tt.event)
		if result != tt.expected {
			t.Errorf("isPreEvent(%q) = %v, want %v", tt.event, result, tt.expected)
		}
	}
}
