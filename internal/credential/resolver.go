// Package credential resolves the model API key from the environment and,
// failing that, from an ordered chain of secrets stores.
package credential

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// DefaultKey is the variable name looked up when none is configured.
const DefaultKey = "OPENAI_API_KEY"

// Store is a secrets store consulted after the environment.
// Lookup reports ok=false when the store does not hold key. A non-nil error
// means the store itself is unavailable; the resolver treats it as not found.
type Store interface {
	Name() string
	Lookup(ctx context.Context, key string) (value string, ok bool, err error)
}

// Resolver looks up Key in the environment, then in Stores in order.
type Resolver struct {
	Key    string
	Stores []Store

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

func NewResolver(key string, stores ...Store) *Resolver {
	if key == "" {
		key = DefaultKey
	}
	return &Resolver{Key: key, Stores: stores}
}

// Resolve returns the credential and whether one was found. It never fails.
func (r *Resolver) Resolve(ctx context.Context) (string, bool) {
	v, _, ok := r.lookup(ctx)
	return v, ok
}

// Source reports where the credential would come from, for display.
// It returns "" when no source holds a value.
func (r *Resolver) Source(ctx context.Context) string {
	_, src, _ := r.lookup(ctx)
	return src
}

// lookup walks the environment, then the stores, and reports the first
// non-empty value with the name of the source that held it.
func (r *Resolver) lookup(ctx context.Context) (value, source string, ok bool) {
	key := r.Key
	if key == "" {
		key = DefaultKey
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v, "env:" + key, true
	}

	for _, s := range r.Stores {
		if s == nil {
			continue
		}
		v, found, err := s.Lookup(ctx, key)
		if err != nil {
			slog.Debug("secrets store unavailable", "store", s.Name(), "error", err)
			continue
		}
		if v = strings.TrimSpace(v); found && v != "" {
			return v, s.Name(), true
		}
	}

	return "", "", false
}
