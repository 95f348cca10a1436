package complety

import (
	"log/slog"
)

// Option configures a Runner (e.g. WithMaxRuns, WithCaster).
type Option func(*Runner)

// WithMaxRuns sets the run ceiling for the loop. Each model turn and each
// tool invocation counts one run. Non-positive values are ignored and the
// default (DefaultMaxRuns) stays in effect.
func WithMaxRuns(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxRuns = n
		}
	}
}

// WithCaster replaces the default SchemaCaster with a custom casting engine.
func WithCaster(c Caster) Option {
	return func(r *Runner) {
		if c != nil {
			r.caster = c
		}
	}
}

// WithSanitizer sets the provider tool-sanitization step applied to the full
// roster before it is attached to the session. Default is passthrough.
func WithSanitizer(s Sanitizer) Option {
	return func(r *Runner) {
		if s != nil {
			r.sanitizer = s
		}
	}
}

// WithLogger sets the logger for loop diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithToolMiddleware applies the given middlewares to every tool in the
// roster (onion order, first middleware outermost) before sanitization.
func WithToolMiddleware(middlewares ...Middleware) Option {
	return func(r *Runner) {
		r.middlewares = middlewares
	}
}
