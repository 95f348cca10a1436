// Package testutil provides test helpers for complety (scripted session
// engines and mock tools).
package testutil

import (
	"context"
	"fmt"

	"github.com/skosovsky/complety"
)

// Call is one scripted tool invocation the fake model makes.
type Call struct {
	Tool string
	Args string
}

// Turn is one scripted model turn: the tool calls it issues. A turn with no
// calls models the assistant answering in plain text instead of calling a tool.
type Turn struct {
	Calls []Call
}

// ScriptedEngine replays a fixed script of model turns, implementing
// complety.Engine deterministically for tests and examples. Each NewSession
// starts a fresh ScriptedSession over the same script. When the script ends
// before the run ceiling, the fake model keeps producing empty turns until
// the budget runs out.
type ScriptedEngine struct {
	Turns []Turn
	// NewSessionErr, when set, is returned by NewSession.
	NewSessionErr error
	// Outcome and Err, when either is set, override what Run returns once the
	// budget is exhausted without a successful stop-tool call. Used to feed
	// arbitrary engine shapes into the normalizer.
	Outcome any
	Err     error

	// Sessions records every session created, newest last.
	Sessions []*ScriptedSession
}

// NewSession implements complety.Engine.
func (e *ScriptedEngine) NewSession(cfg complety.ModelConfig, verbose bool, contextKV map[string]string) (complety.Session, error) {
	if e.NewSessionErr != nil {
		return nil, e.NewSessionErr
	}
	s := &ScriptedSession{engine: e, Config: cfg, Verbose: verbose, ContextKV: contextKV}
	e.Sessions = append(e.Sessions, s)
	return s, nil
}

// ScriptedSession is one scripted conversation. Its exported fields record
// everything the runner handed over, for assertions.
type ScriptedSession struct {
	engine *ScriptedEngine

	Config    complety.ModelConfig
	Verbose   bool
	ContextKV map[string]string
	Messages  []complety.Message
	Roster    []complety.Tool
	// ToolErrs are the tool errors fed back into the conversation, in order.
	ToolErrs []error
	// Runs counts model turns plus tool invocations consumed by Run.
	Runs int
}

// Append implements complety.Session.
func (s *ScriptedSession) Append(msgs []complety.Message) error {
	s.Messages = append(s.Messages, msgs...)
	return nil
}

// AttachTools implements complety.Session.
func (s *ScriptedSession) AttachTools(tools []complety.Tool) error {
	s.Roster = tools
	return nil
}

// Run replays the script. Every model turn and every tool invocation counts
// one run against maxRuns; a successful stopTool execution ends the run with
// a complety.Completed outcome.
func (s *ScriptedSession) Run(ctx context.Context, stopTool string, maxRuns int) (any, error) {
	byName := make(map[string]complety.Tool, len(s.Roster))
	for _, t := range s.Roster {
		byName[t.Name()] = t
	}
	next := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.Runs >= maxRuns {
			return s.exhausted()
		}
		s.Runs++ // model turn
		var turn Turn
		if next < len(s.engine.Turns) {
			turn = s.engine.Turns[next]
			next++
		}
		for _, call := range turn.Calls {
			if s.Runs >= maxRuns {
				return s.exhausted()
			}
			s.Runs++ // tool invocation
			tool, ok := byName[call.Tool]
			if !ok {
				s.ToolErrs = append(s.ToolErrs, fmt.Errorf("unknown tool %q", call.Tool))
				continue
			}
			out, err := tool.Execute(ctx, []byte(call.Args))
			if err != nil {
				// Fed back to the model; the loop continues.
				s.ToolErrs = append(s.ToolErrs, err)
				continue
			}
			if call.Tool == stopTool {
				return complety.Completed{Value: out}, nil
			}
		}
	}
}

func (s *ScriptedSession) exhausted() (any, error) {
	if s.engine.Outcome != nil || s.engine.Err != nil {
		return s.engine.Outcome, s.engine.Err
	}
	return nil, &complety.ExhaustedError{Runs: s.Runs}
}

var (
	_ complety.Engine  = (*ScriptedEngine)(nil)
	_ complety.Session = (*ScriptedSession)(nil)
)
