package complety

import (
	"context"
)

// ToolName is the fixed identifier of the completion tool. Auxiliary tools
// must not use it; Runner.Complete rejects the request if one does.
const ToolName = "complete_request"

// DefaultMaxRuns is the run ceiling used when WithMaxRuns is not given.
// Each model turn and each tool invocation counts as one run.
const DefaultMaxRuns = 25

// Message roles understood by session engines.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one rendered conversation message. Templating and provider
// formatting belong to the session engine; complety only carries these through.
type Message struct {
	Role    string
	Content string
}

// Tool is the contract for an LLM-callable instrument attached to a session.
// It is provider-agnostic (no knowledge of OpenAI, Anthropic, etc.).
type Tool interface {
	Name() string
	Description() string
	// Parameters returns a valid JSON Schema as map (compatible with LLM tool definitions).
	Parameters() map[string]any
	// Execute runs the tool with the raw JSON arguments produced by the model
	// and returns the JSON payload to feed back into the conversation.
	Execute(ctx context.Context, argsJSON []byte) ([]byte, error)
}

// Request is the immutable input to one completion invocation. It is owned by
// that invocation and must not be mutated after construction.
type Request struct {
	// Messages is the prior conversation, already rendered.
	Messages []Message
	// Config identifies the provider and model. Forcing never writes to it;
	// a pinned copy is derived when the provider can be forced.
	Config ModelConfig
	// Tools are caller-supplied auxiliary tools. Their presence disables
	// deterministic forcing of the completion tool.
	Tools []Tool
	// Verbose promotes loop logging from Debug to Info.
	Verbose bool
	// Context is a flattened mapping of ambient key/value pairs handed to the
	// session engine at initialization.
	Context map[string]string
	// Expected describes the result the model must produce.
	Expected Expectation
}
