package knob

import (
	"context"
	"fmt"
	"time"

	"github.com/zoobzio/pipz"
)

// LoaderOption wraps the apply stage of a Loader pipeline with middleware.
//
// Loader settings such as debounce or codec are chainable methods on the
// Loader instead.
type LoaderOption func(pipz.Chainable[*Request]) pipz.Chainable[*Request]

var (
	retryID          = pipz.NewIdentity("knob:retry", "Retries the apply pipeline")
	backoffID        = pipz.NewIdentity("knob:backoff", "Retries the apply pipeline with backoff")
	timeoutID        = pipz.NewIdentity("knob:timeout", "Bounds the apply pipeline duration")
	fallbackID       = pipz.NewIdentity("knob:fallback", "Tries fallback appliers in order")
	circuitBreakerID = pipz.NewIdentity("knob:circuit-breaker", "Stops applying after repeated failures")
	errorHandlerID   = pipz.NewIdentity("knob:error-handler", "Observes apply failures")
	middlewareID     = pipz.NewIdentity("knob:middleware", "Runs middleware before apply")
	renameKeysID     = pipz.NewIdentity("knob:rename-keys", "Maps legacy preset keys")
	requireKeysID    = pipz.NewIdentity("knob:require-keys", "Rejects presets missing keys")
	defaultsID       = pipz.NewIdentity("knob:defaults", "Fills missing preset keys")
	rateLimitID      = pipz.NewIdentity("knob:rate-limit", "Limits how often presets apply")
)

func buildPipeline(terminal pipz.Chainable[*Request], opts []LoaderOption) pipz.Chainable[*Request] {
	pipeline := terminal
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	return pipeline
}

// -----------------------------------------------------------------------------
// Wrapping options
// -----------------------------------------------------------------------------

// WithRetry retries a failed apply up to maxAttempts times.
func WithRetry(maxAttempts int) LoaderOption {
	return func(p pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		return pipz.NewRetry(retryID, p, maxAttempts)
	}
}

// WithBackoff retries a failed apply with delays of baseDelay, 2*baseDelay
// and so on.
func WithBackoff(maxAttempts int, baseDelay time.Duration) LoaderOption {
	return func(p pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		return pipz.NewBackoff(backoffID, p, maxAttempts, baseDelay)
	}
}

// WithTimeout fails an apply that takes longer than d.
func WithTimeout(d time.Duration) LoaderOption {
	return func(p pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		return pipz.NewTimeout(timeoutID, p, d)
	}
}

// WithFallback tries each fallback in order when apply fails.
func WithFallback(fallbacks ...pipz.Chainable[*Request]) LoaderOption {
	return func(p pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		all := append([]pipz.Chainable[*Request]{p}, fallbacks...)
		return pipz.NewFallback(fallbackID, all...)
	}
}

// WithCircuitBreaker rejects changes after failures consecutive failures
// until recovery has passed.
func WithCircuitBreaker(failures int, recovery time.Duration) LoaderOption {
	return func(p pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		return pipz.NewCircuitBreaker(circuitBreakerID, p, failures, recovery)
	}
}

// WithErrorHandler passes apply failures to handler. The error still
// propagates.
func WithErrorHandler(handler pipz.Chainable[*pipz.Error[*Request]]) LoaderOption {
	return func(p pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		return pipz.NewHandle(errorHandlerID, p, handler)
	}
}

// WithMiddleware runs processors in order before apply.
//
// Example:
//
//	knob.NewLoader(watcher, apply,
//	    knob.WithMiddleware(
//	        knob.UseRenameKeys(map[string]string{"speed": "velocity"}),
//	        knob.UseRequireKeys("velocity"),
//	    ),
//	)
func WithMiddleware(processors ...pipz.Chainable[*Request]) LoaderOption {
	return func(p pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		all := make([]pipz.Chainable[*Request], 0, len(processors)+1)
		all = append(all, processors...)
		all = append(all, p)
		return pipz.NewSequence(middlewareID, all...)
	}
}

// -----------------------------------------------------------------------------
// Middleware processors
// -----------------------------------------------------------------------------

// UseTransform edits the request. It cannot fail.
func UseTransform(id pipz.Identity, fn func(context.Context, *Request) *Request) pipz.Chainable[*Request] {
	return pipz.Transform(id, fn)
}

// UseApply edits the request and may reject it.
func UseApply(id pipz.Identity, fn func(context.Context, *Request) (*Request, error)) pipz.Chainable[*Request] {
	return pipz.Apply(id, fn)
}

// UseEffect runs a side effect and passes the request on unchanged.
func UseEffect(id pipz.Identity, fn func(context.Context, *Request) error) pipz.Chainable[*Request] {
	return pipz.Effect(id, fn)
}

// UseMutate applies transformer only when condition holds.
func UseMutate(id pipz.Identity, transformer func(context.Context, *Request) *Request, condition func(context.Context, *Request) bool) pipz.Chainable[*Request] {
	return pipz.Mutate(id, transformer, condition)
}

// UseEnrich tries to add data to the request. A failing enrichment is
// ignored and the request passes on unchanged.
func UseEnrich(id pipz.Identity, fn func(context.Context, *Request) (*Request, error)) pipz.Chainable[*Request] {
	return pipz.Enrich(id, fn)
}

// UseFilter runs processor only when condition holds.
func UseFilter(id pipz.Identity, condition func(context.Context, *Request) bool, processor pipz.Chainable[*Request]) pipz.Chainable[*Request] {
	return pipz.NewFilter(id, condition, processor)
}

// UseRateLimit limits how often presets pass, waiting for capacity.
func UseRateLimit(rate float64, burst int) pipz.Chainable[*Request] {
	return pipz.NewRateLimiter[*Request](rateLimitID, rate, burst)
}

// UseRenameKeys moves values from old preset keys to new ones. A value
// already present under the new key wins.
func UseRenameKeys(renames map[string]string) pipz.Chainable[*Request] {
	return pipz.Transform(renameKeysID, func(_ context.Context, req *Request) *Request {
		current := make(Preset, len(req.Current))
		for k, v := range req.Current {
			current[k] = v
		}
		for from, to := range renames {
			v, ok := current[from]
			if !ok {
				continue
			}
			delete(current, from)
			if _, exists := current[to]; !exists {
				current[to] = v
			}
		}
		req.Current = current
		return req
	})
}

// UseRequireKeys rejects presets that lack any of keys.
func UseRequireKeys(keys ...string) pipz.Chainable[*Request] {
	return pipz.Apply(requireKeysID, func(_ context.Context, req *Request) (*Request, error) {
		for _, k := range keys {
			if _, ok := req.Current[k]; !ok {
				return req, fmt.Errorf("preset is missing key %q", k)
			}
		}
		return req, nil
	})
}

// UseDefaults fills keys absent from the preset with the given values.
func UseDefaults(defaults Preset) pipz.Chainable[*Request] {
	return pipz.Transform(defaultsID, func(_ context.Context, req *Request) *Request {
		current := make(Preset, len(req.Current)+len(defaults))
		for k, v := range defaults {
			current[k] = v
		}
		for k, v := range req.Current {
			current[k] = v
		}
		req.Current = current
		return req
	})
}
