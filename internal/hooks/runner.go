package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ConfigDir and ConfigFile locate the hooks configuration under the site root.
const (
	ConfigDir  = ".mdsite"
	ConfigFile = "hooks.yaml"
)

// HookRunner loads hook configurations and executes hooks for events.
type HookRunner struct {
	siteRoot string
	config   *HooksConfig
	log      logrus.FieldLogger
}

// NewHookRunner creates a new HookRunner for the given site root.
// It loads the hooks configuration from .mdsite/hooks.yaml if it exists.
func NewHookRunner(siteRoot string) (*HookRunner, error) {
	runner := &HookRunner{
		siteRoot: siteRoot,
		config:   &HooksConfig{Hooks: make(map[EventType][]HookConfig)},
		log:      logrus.StandardLogger(),
	}

	if err := runner.loadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading hooks config: %w", err)
		}
		// Config file doesn't exist - use empty config
	}

	return runner, nil
}

// loadConfig loads the hooks configuration from .mdsite/hooks.yaml.
func (r *HookRunner) loadConfig() error {
	configPath := filepath.Join(r.siteRoot, ConfigDir, ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, r.config); err != nil {
		return err
	}
	if r.config.Hooks == nil {
		r.config.Hooks = make(map[EventType][]HookConfig)
	}
	for event, hooks := range r.config.Hooks {
		if !isKnownEvent(event) {
			return fmt.Errorf("unknown event %q in %s", event, configPath)
		}
		for _, hook := range hooks {
			if hook.Type != HookTypeBuiltin {
				continue
			}
			if _, ok := lookupBuiltin(hook.Builtin); !ok {
				return fmt.Errorf("unknown builtin hook %q for %s in %s (available: %s)",
					hook.Builtin, event, configPath, strings.Join(GetBuiltinNames(), ", "))
			}
		}
	}
	return nil
}

// SetLogger replaces the logger hook results are reported to.
func (r *HookRunner) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		r.log = log
	}
}

// Prepend registers hooks to run before the configured ones for an event.
func (r *HookRunner) Prepend(eventType EventType, hooks ...HookConfig) {
	r.config.Hooks[eventType] = append(append([]HookConfig{}, hooks...), r.config.Hooks[eventType]...)
}

// Fire executes all hooks registered for the given event type.
// Returns a slice of HookResults, one for each hook executed.
// For pre-* events, if any hook returns Block=true, later hooks are skipped.
func (r *HookRunner) Fire(ctx HookContext) []HookResult {
	hooks, exists := r.config.Hooks[ctx.EventType]
	if !exists || len(hooks) == 0 {
		return nil
	}
	if ctx.Ctx == nil {
		ctx.Ctx = context.Background()
	}

	results := make([]HookResult, 0, len(hooks))
	isPre := isPreEvent(ctx.EventType)

	for _, hook := range hooks {
		result := r.executeHook(hook, ctx)
		results = append(results, result)

		entry := r.log.WithFields(logrus.Fields{
			"event":    ctx.EventType,
			"hook":     hookName(hook),
			"duration": result.Duration,
		})
		switch {
		case result.Err != nil:
			entry.WithError(result.Err).Warn("hook failed")
		case result.Block:
			entry.Warnf("hook blocked build: %s", result.Message)
		default:
			entry.Debug(result.Message)
		}

		// For pre-* events, stop if a hook blocks the operation
		if isPre && result.Block {
			break
		}
	}

	return results
}

// executeHook executes a single hook and returns the result.
func (r *HookRunner) executeHook(hook HookConfig, ctx HookContext) HookResult {
	start := time.Now()

	// Set up timeout if specified
	execCtx := ctx.Ctx
	if hook.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx.Ctx, time.Duration(hook.Timeout)*time.Second)
		defer cancel()
	}

	switch hook.Type {
	case HookTypeCommand:
		return r.executeCommand(hook, ctx, execCtx, start)
	case HookTypeBuiltin:
		return r.executeBuiltin(hook, ctx, execCtx, start)
	default:
		return Failure(fmt.Errorf("unknown hook type: %s", hook.Type), time.Since(start))
	}
}

// executeCommand executes a shell command hook.
func (r *HookRunner) executeCommand(hook HookConfig, ctx HookContext, execCtx context.Context, start time.Time) HookResult {
	if hook.Cmd == "" {
		return Failure(fmt.Errorf("command hook missing cmd field"), time.Since(start))
	}

	cmd := exec.CommandContext(execCtx, "sh", "-c", hook.Cmd)
	cmd.Dir = r.siteRoot

	cmd.Env = append(os.Environ(),
		fmt.Sprintf("MDSITE_EVENT=%s", ctx.EventType),
		fmt.Sprintf("MDSITE_ROOT=%s", ctx.SiteRoot),
		fmt.Sprintf("MDSITE_OUTPUT=%s", ctx.OutputDir),
		fmt.Sprintf("MDSITE_PAGE=%s", ctx.Page),
	)

	output, err := cmd.CombinedOutput()
	duration := time.Since(start)

	if err != nil {
		return Failure(fmt.Errorf("command failed: %w: %s", err, string(output)), duration)
	}

	return Success(string(output), duration)
}

// executeBuiltin executes a built-in hook function.
func (r *HookRunner) executeBuiltin(hook HookConfig, ctx HookContext, execCtx context.Context, start time.Time) HookResult {
	if hook.Builtin == "" {
		return Failure(fmt.Errorf("builtin hook missing builtin field"), time.Since(start))
	}

	fn, exists := lookupBuiltin(hook.Builtin)
	if !exists {
		return Failure(fmt.Errorf("unknown builtin hook: %s", hook.Builtin), time.Since(start))
	}

	// Update context in case timeout was added
	ctx.Ctx = execCtx

	return fn(ctx)
}

// Blocked returns the first blocking result, if any.
func Blocked(results []HookResult) (HookResult, bool) {
	for _, res := range results {
		if res.Block {
			return res, true
		}
	}
	return HookResult{}, false
}

// isPreEvent returns true if the event type is a pre-* event.
func isPreEvent(eventType EventType) bool {
	return eventType == EventPreBuild
}

func isKnownEvent(eventType EventType) bool {
	for _, e := range AllEventTypes {
		if e == eventType {
			return true
		}
	}
	return false
}

func hookName(hook HookConfig) string {
	if hook.Type == HookTypeBuiltin {
		return hook.Builtin
	}
	return hook.Cmd
}

// HasHooks returns true if there are hooks registered for the given event type.
func (r *HookRunner) HasHooks(eventType EventType) bool {
	hooks, exists := r.config.Hooks[eventType]
	return exists && len(hooks) > 0
}

// GetHooks returns the hooks registered for the given event type.
func (r *HookRunner) GetHooks(eventType EventType) []HookConfig {
	return r.config.Hooks[eventType]
}
