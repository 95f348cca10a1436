package complety

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Runner drives bounded completion loops against one session engine. It is
// immutable after construction; invocations share no mutable state and may
// run concurrently for independent requests.
type Runner struct {
	engine      Engine
	caster      Caster
	sanitizer   Sanitizer
	maxRuns     int
	logger      *slog.Logger
	middlewares []Middleware
}

// NewRunner creates a Runner for the given session engine. engine must not be
// nil. Defaults: SchemaCaster, passthrough sanitization, DefaultMaxRuns,
// slog.Default().
func NewRunner(engine Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:    engine,
		caster:    SchemaCaster{},
		sanitizer: passthroughSanitizer,
		maxRuns:   DefaultMaxRuns,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Complete runs one bounded completion loop: adapt the result schema to the
// provider, decide forcing, build the completion tool, run the session until
// the tool validates or the run ceiling is hit, and normalize the outcome.
//
// Validation failures are recovered inside the loop (fed back to the model as
// tool errors) and never surface here on their own. Every other failure comes
// back as a classified error value; Complete never lets a fault escape, a
// panicking collaborator included.
func (r *Runner) Complete(ctx context.Context, req Request) (value any, err error) {
	defer func() {
		if p := recover(); p != nil {
			value = nil
			err = &SystemError{Err: &panicError{p: p}}
		}
	}()

	for _, t := range req.Tools {
		if t.Name() == ToolName {
			return nil, ErrReservedToolName
		}
	}

	resultSchema, required := AdaptResultSchema(req.Config.Provider, req.Expected.Schema)
	cfg, forced := Force(req.Config, req.Tools)
	completion := newCompletionTool(
		resultSchema,
		required,
		completionDescription(forced, r.maxRuns),
		Validation{Expected: req.Expected, Caster: r.caster},
	)

	logFn := r.logger.Debug
	if req.Verbose {
		logFn = r.logger.Info
	}
	logFn("completion loop start",
		"provider", cfg.Provider, "model", cfg.Model,
		"forced", forced, "max_runs", r.maxRuns, "aux_tools", len(req.Tools))

	sess, err := r.engine.NewSession(cfg, req.Verbose, req.Context)
	if err != nil {
		return nil, err
	}
	if err := sess.Append(req.Messages); err != nil {
		return nil, err
	}

	roster := make([]Tool, 0, len(req.Tools)+1)
	roster = append(roster, Tool(completion))
	roster = append(roster, req.Tools...)
	for i, t := range roster {
		roster[i] = applyMiddlewares(t, r.middlewares)
	}
	roster = r.sanitizer.Sanitize(roster, cfg)
	if err := sess.AttachTools(roster); err != nil {
		return nil, err
	}

	outcome, runErr := sess.Run(ctx, ToolName, r.maxRuns)
	if v, ok := completion.Completed(); ok {
		logFn("completion loop done", "provider", cfg.Provider, "model", cfg.Model)
		return v, nil
	}
	value, err = Normalize(outcome, runErr)
	logFn("completion loop ended without result", "error", err)
	return value, err
}

// CompleteAs runs Complete and decodes the validated value into T. When T
// implements Validatable, its Validate hook runs on the decoded value.
func CompleteAs[T any](ctx context.Context, r *Runner, req Request) (T, error) {
	var out T
	v, err := r.Complete(ctx, req)
	if err != nil {
		return out, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return out, &SystemError{Err: err}
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode validated result: %v: %w", err, ErrValidation)
	}
	if err := runValidatable(out); err != nil {
		var zero T
		return zero, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	return out, nil
}
