// Package langchain adapts tmc/langchaingo chat models to complety's Engine
// and Session boundary. It owns message mapping, tool roster export, tool
// choice pinning, and the turn/tool dispatch loop under the run ceiling.
package langchain

import (
	"context"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/skosovsky/complety"
)

// Engine wraps a langchaingo model as a complety.Engine. The model carries
// its own transport and credentials; Engine only drives conversations on it.
type Engine struct {
	model llms.Model
}

// New creates an Engine over the given model. model must not be nil.
func New(model llms.Model) *Engine {
	return &Engine{model: model}
}

// NewSession implements complety.Engine. Ambient context pairs become a
// system preamble at the start of the history (sorted by key for
// deterministic prompts).
func (e *Engine) NewSession(cfg complety.ModelConfig, verbose bool, contextKV map[string]string) (complety.Session, error) {
	s := &session{model: e.model, cfg: cfg, verbose: verbose}
	if len(contextKV) > 0 {
		keys := make([]string, 0, len(contextKV))
		for k := range contextKV {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString("Context:\n")
		for _, k := range keys {
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(contextKV[k])
			b.WriteString("\n")
		}
		s.history = append(s.history, llms.TextParts(llms.ChatMessageTypeSystem, b.String()))
	}
	return s, nil
}

type session struct {
	model   llms.Model
	cfg     complety.ModelConfig
	verbose bool

	history []llms.MessageContent
	tools   []llms.Tool
	roster  map[string]complety.Tool
}

func (s *session) Append(msgs []complety.Message) error {
	for _, m := range msgs {
		s.history = append(s.history, llms.TextParts(roleToMessageType(m.Role), m.Content))
	}
	return nil
}

func (s *session) AttachTools(tools []complety.Tool) error {
	s.tools = make([]llms.Tool, 0, len(tools))
	s.roster = make(map[string]complety.Tool, len(tools))
	for _, t := range tools {
		s.tools = append(s.tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
		s.roster[t.Name()] = t
	}
	return nil
}

// Run drives the conversation. Each GenerateContent call is one run, each
// tool invocation another; maxRuns is a hard ceiling. A successful stopTool
// execution ends the run with a complety.Completed outcome; tool errors are
// fed back into the conversation as tool responses so the model can correct
// itself. Provider errors pass through unchanged.
func (s *session) Run(ctx context.Context, stopTool string, maxRuns int) (any, error) {
	runs := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if runs >= maxRuns {
			return nil, &complety.ExhaustedError{Runs: runs}
		}
		runs++

		resp, err := s.model.GenerateContent(ctx, s.history, s.callOptions()...)
		if err != nil {
			return nil, err
		}
		if resp == nil || len(resp.Choices) == 0 {
			// Unknown shape; let the normalizer classify it.
			return resp, nil
		}
		choice := resp.Choices[0]
		s.history = append(s.history, assistantMessage(choice))

		if len(choice.ToolCalls) == 0 {
			// Plain text turn; the completion instructions keep nudging.
			continue
		}
		for _, tc := range choice.ToolCalls {
			if tc.FunctionCall == nil {
				continue
			}
			if runs >= maxRuns {
				return nil, &complety.ExhaustedError{Runs: runs}
			}
			runs++

			name := tc.FunctionCall.Name
			var content string
			done := false
			if tool, ok := s.roster[name]; ok {
				out, execErr := tool.Execute(ctx, []byte(tc.FunctionCall.Arguments))
				if execErr != nil {
					content = execErr.Error()
				} else {
					content = string(out)
					done = name == stopTool
				}
			} else {
				content = "unknown tool: " + name
			}
			s.history = append(s.history, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{ToolCallID: tc.ID, Name: name, Content: content},
				},
			})
			if done {
				return complety.Completed{Value: content}, nil
			}
		}
	}
}

func (s *session) callOptions() []llms.CallOption {
	opts := []llms.CallOption{llms.WithTools(s.tools)}
	if s.cfg.Model != "" {
		opts = append(opts, llms.WithModel(s.cfg.Model))
	}
	if s.cfg.ToolChoice != "" {
		opts = append(opts, llms.WithToolChoice(map[string]any{
			"type":     "function",
			"function": map[string]any{"name": s.cfg.ToolChoice},
		}))
	}
	return opts
}

// assistantMessage rebuilds the model's turn (text plus tool call parts) for
// the history; the assistant message must precede the tool role responses.
func assistantMessage(choice *llms.ContentChoice) llms.MessageContent {
	var parts []llms.ContentPart
	if choice.Content != "" {
		parts = append(parts, llms.TextPart(choice.Content))
	}
	for _, tc := range choice.ToolCalls {
		parts = append(parts, llms.ToolCall{
			ID:           tc.ID,
			Type:         tc.Type,
			FunctionCall: tc.FunctionCall,
		})
	}
	if len(parts) == 0 {
		parts = append(parts, llms.TextPart(" "))
	}
	return llms.MessageContent{Role: llms.ChatMessageTypeAI, Parts: parts}
}

func roleToMessageType(role string) llms.ChatMessageType {
	switch role {
	case complety.RoleSystem:
		return llms.ChatMessageTypeSystem
	case complety.RoleAssistant:
		return llms.ChatMessageTypeAI
	case complety.RoleTool:
		return llms.ChatMessageTypeGeneric
	default:
		return llms.ChatMessageTypeHuman
	}
}

var (
	_ complety.Engine  = (*Engine)(nil)
	_ complety.Session = (*session)(nil)
)
