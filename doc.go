// Package complety forces a conversational LLM session to finish by calling
// one designated completion tool, validates the tool's arguments against an
// expected result schema, and collapses the session engine's heterogeneous
// outcomes into a single value-or-error result.
//
// # Overview
//
// Free-running agent loops tend not to stop. This package makes termination a
// tool call: the model must invoke complete_request with its final answer.
// Providers that support deterministic tool choice are forced to call it;
// everyone else is instructed to, under a hard run ceiling.
//
// Pipeline: Expectation (expected type, constraints, schema) → completion
// tool with a provider-adapted parameter schema → forcing decision → session
// run (engine-owned turns and tool dispatch) → cast and constraint
// validation → normalized result.
//
// # Key concepts
//
//   - Single stop condition: the conversation ends when complete_request
//     validates, or when maxRuns model turns and tool invocations elapse.
//   - Self-correction: a failed validation is returned to the model as a tool
//     error carrying the expected JSON Schema, so it can try again.
//   - Total coverage: every engine outcome becomes a classified value or
//     error, including shapes this package has never seen; the caller never
//     observes an escaping fault.
//
// See Runner, Request, Expectation for the core types, and Engine / Session
// for the boundary a chat backend has to implement (the langchain submodule
// ships one for tmc/langchaingo models).
//
// # Example
//
//	exp, err := complety.Expect[Report](nil)
//	if err != nil { ... }
//	r := complety.NewRunner(engine, complety.WithMaxRuns(10))
//	report, err := complety.CompleteAs[Report](ctx, r, complety.Request{
//	    Messages: []complety.Message{{Role: complety.RoleUser, Content: "summarize ..."}},
//	    Config:   complety.ModelConfig{Provider: complety.ProviderOpenAI, Model: "gpt-4o"},
//	    Expected: exp,
//	})
package complety
