package complety

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
)

// Validation bundles the expected type descriptor, its constraints, and the
// caster for the completion handler. It is passed into the tool explicitly
// (instead of captured in a closure) so the handler stays inspectable and
// testable in isolation.
type Validation struct {
	Expected Expectation
	Caster   Caster
}

// Check casts raw against the expected type, then applies the constraints to
// the cast value. Failure of either step yields a *ValidationError carrying
// the expected schema for the model's next attempt.
func (v Validation) Check(raw any) (any, error) {
	cast, err := v.Caster.Cast(v.Expected.Descriptor, raw, v.Expected.Constraints)
	if err != nil {
		return nil, v.invalid(err)
	}
	out, err := v.Caster.ApplyConstraints(v.Expected.Descriptor, cast, v.Expected.Constraints)
	if err != nil {
		return nil, v.invalid(err)
	}
	return out, nil
}

func (v Validation) invalid(err error) error {
	return &ValidationError{Reason: err.Error(), Schema: v.Expected.Schema, Err: ErrValidation}
}

// completionAck is the tool payload fed back into the conversation after a
// successful completion call.
var completionAck = []byte(`{"status":"complete"}`)

// completionTool is the single designated callable the model must invoke to
// finish. Created fresh per invocation, consumed once by the session,
// discarded after the loop ends.
type completionTool struct {
	description string
	parameters  map[string]any
	check       Validation

	value any
	done  bool
}

// newCompletionTool assembles the completion tool from the provider-adapted
// result schema, the required-field list, the forcing-mode description, and
// the validation bundle.
func newCompletionTool(resultSchema map[string]any, required []string, description string, check Validation) *completionTool {
	return &completionTool{
		description: description,
		parameters:  buildParameters(resultSchema, required),
		check:       check,
	}
}

// completionDescription is the tool description shown to the model. When the
// provider is not forced, the run ceiling is the only stopping mechanism, so
// the text states it explicitly.
func completionDescription(forced bool, maxRuns int) string {
	if forced {
		return "Call " + ToolName + " with the final result of the request."
	}
	return fmt.Sprintf(
		"When the request is fulfilled, call %s with the final result. You have at most %d responses before the request is abandoned.",
		ToolName, maxRuns,
	)
}

func (t *completionTool) Name() string        { return ToolName }
func (t *completionTool) Description() string { return t.description }

// Parameters returns a shallow copy of the parameter schema (top-level keys
// only). Nested maps are shared; callers must not mutate them.
func (t *completionTool) Parameters() map[string]any { return maps.Clone(t.parameters) }

// Strict reports the tool's strict-mode flag. Always true: the parameter
// schema declares exactly one property and forbids additional ones.
func (t *completionTool) Strict() bool { return true }

// Execute validates the model's candidate result. On success it records the
// value, satisfying the loop's stopping condition, and acks. On failure it
// returns a *ValidationError for the session to feed back to the model; the
// loop continues until a valid call or the run ceiling.
func (t *completionTool) Execute(_ context.Context, argsJSON []byte) ([]byte, error) {
	var args map[string]any
	if err := json.Unmarshal(argsJSON, &args); err != nil {
		return nil, t.check.invalid(fmt.Errorf("arguments are not valid JSON: %w", err))
	}
	value, err := t.check.Check(args[resultProperty])
	if err != nil {
		return nil, err
	}
	t.value = value
	t.done = true
	return completionAck, nil
}

// Completed returns the validated result value and whether a successful
// completion call happened.
func (t *completionTool) Completed() (any, bool) { return t.value, t.done }

var _ Tool = (*completionTool)(nil)
