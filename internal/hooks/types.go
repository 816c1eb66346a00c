package hooks

import (
	"context"
	"time"
)

// EventType represents a point in a site build that can trigger hooks.
type EventType string

// Event type constants for the build lifecycle.
const (
	EventPreBuild  EventType = "pre-build"
	EventPostPage  EventType = "post-page"
	EventPostBuild EventType = "post-build"
)

// AllEventTypes returns all supported event types.
var AllEventTypes = []EventType{
	EventPreBuild,
	EventPostPage,
	EventPostBuild,
}

// HookType represents the type of hook to execute.
type HookType string

const (
	// HookTypeCommand executes a shell command.
	HookTypeCommand HookType = "command"

	// HookTypeBuiltin executes a built-in Go function.
	HookTypeBuiltin HookType = "builtin"
)

// HookConfig represents a single hook configuration.
type HookConfig struct {
	Type    HookType `yaml:"type"`              // Type of hook: "command" or "builtin"
	Cmd     string   `yaml:"cmd,omitempty"`     // Shell command to execute (for command hooks)
	Builtin string   `yaml:"builtin,omitempty"` // Built-in function name (for builtin hooks)
	Timeout int      `yaml:"timeout,omitempty"` // Timeout in seconds (0 = no timeout)
}

// HookResult represents the result of executing a hook.
type HookResult struct {
	Block    bool          // Whether to block the build (for pre-* hooks)
	Message  string        // Message to display/log
	Err      error         // Error if the hook failed
	Duration time.Duration // How long the hook took to execute
}

// HookContext provides context to hook execution.
type HookContext struct {
	EventType EventType       // The event that triggered the hook
	SiteRoot  string          // Directory holding mdsite.toml
	OutputDir string          // Absolute output directory
	StaticDir string          // Absolute static directory
	Page      string          // Written page path (post-page only)
	Ctx       context.Context // Context for cancellation/timeout
}

// HooksConfig represents the .mdsite/hooks.yaml configuration.
type HooksConfig struct {
	Hooks map[EventType][]HookConfig `yaml:"hooks"`
}

// Success creates a successful HookResult.
func Success(message string, duration time.Duration) HookResult {
	return HookResult{
		Block:    false,
		Message:  message,
		Duration: duration,
	}
}

// Failure creates a failed HookResult.
func Failure(err error, duration time.Duration) HookResult {
	return HookResult{
		Block:    false,
		Err:      err,
		Message:  err.Error(),
		Duration: duration,
	}
}

// BlockOperation creates a HookResult that blocks the build.
func BlockOperation(message string, duration time.Duration) HookResult {
	return HookResult{
		Block:    true,
		Message:  message,
		Duration: duration,
	}
}
