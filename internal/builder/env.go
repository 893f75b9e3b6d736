package builder

import (
	"context"

	"github.com/onecrypto/cryptobin-packager/internal/logger"
)

// envValue is one named environment assignment with its provenance.
type envValue struct {
	value  string
	reason string
}

// Env is the named-value store consumed by the build framework.
// The first assignment of a name wins; later assignments are ignored,
// matching the orchestrator's layered-configuration semantics.
type Env struct {
	values map[string]envValue
	order  []string
}

// NewEnv returns an empty environment store.
func NewEnv() *Env {
	return &Env{values: make(map[string]envValue)}
}

// SetValue records a named value with a human-readable reason.
// It returns true when the value was stored, false when the name
// already had a value.
func (e *Env) SetValue(ctx context.Context, name, value, reason string) bool {
	if existing, ok := e.values[name]; ok {
		logger.DebugKV(ctx, "Environment value already set, keeping existing",
			"name", name, "existing", existing.value, "ignored", value)

		return false
	}

	e.values[name] = envValue{value: value, reason: reason}
	e.order = append(e.order, name)

	logger.DebugKV(ctx, "Environment value set", "name", name, "value", value, "reason", reason)

	return true
}

// GetValue returns the stored value for name, or fallback when unset.
func (e *Env) GetValue(name, fallback string) string {
	if v, ok := e.values[name]; ok {
		return v.value
	}

	return fallback
}

// Names returns the assigned names in assignment order.
func (e *Env) Names() []string {
	return append([]string(nil), e.order...)
}
