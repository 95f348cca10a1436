package complety

import (
	"context"
)

// Engine creates conversation sessions. It is the boundary to the external
// chat-session collaborator; complety never sees transport, streaming, or
// message templating.
type Engine interface {
	// NewSession initializes one conversation from the effective model
	// configuration, a verbosity flag, and a flattened mapping of ambient
	// context key/value pairs.
	NewSession(cfg ModelConfig, verbose bool, contextKV map[string]string) (Session, error)
}

// Session is one model conversation. Implementations own the turn loop and
// tool-call dispatch internals.
type Session interface {
	// Append adds rendered prior messages to the conversation history.
	Append(msgs []Message) error
	// AttachTools sets the tool roster used on subsequent turns.
	AttachTools(tools []Tool) error
	// Run drives the conversation until stopTool executes without error or
	// maxRuns is exhausted. Every model turn and every tool invocation counts
	// one run; the ceiling is hard. Tool execution errors are fed back into
	// the conversation, not returned. On exhaustion implementations should
	// return an *ExhaustedError; whatever they return is classified by
	// Normalize, unknown shapes included.
	Run(ctx context.Context, stopTool string, maxRuns int) (any, error)
}

// Sanitizer adjusts a tool roster to the active provider (dropping or
// rewriting tool features the provider rejects). It is applied to the full
// roster, completion tool included, before the roster is attached.
type Sanitizer interface {
	Sanitize(tools []Tool, cfg ModelConfig) []Tool
}

// SanitizerFunc adapts a function to the Sanitizer interface.
type SanitizerFunc func(tools []Tool, cfg ModelConfig) []Tool

// Sanitize calls f.
func (f SanitizerFunc) Sanitize(tools []Tool, cfg ModelConfig) []Tool {
	return f(tools, cfg)
}

// passthroughSanitizer is the default: the roster is used as-is.
var passthroughSanitizer Sanitizer = SanitizerFunc(func(tools []Tool, _ ModelConfig) []Tool {
	return tools
})
