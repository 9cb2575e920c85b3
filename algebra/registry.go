package algebra

import (
	"sync"

	"github.com/dolthub/swiss"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

var log = logger.GetOrCreate("algebra")

const initialRegistrySize = 64

// Registry maps structural keys to canonical Set instances. It is populated
// lazily and never evicts: a Set, once registered, lives as long as the
// registry. Concurrent requests for the same key build the Set once and all
// observe the same instance.
type Registry struct {
	mut    sync.RWMutex
	sets   *swiss.Map[string, Set]
	flight singleflight.Group
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sets: swiss.NewMap[string, Set](initialRegistrySize),
	}
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide registry used when no registry
// option is given.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Lookup returns the canonical Set registered under key.
func (r *Registry) Lookup(key string) (Set, bool) {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return r.sets.Get(key)
}

// Len returns the number of registered sets.
func (r *Registry) Len() int {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return r.sets.Count()
}

// GetOrCreate returns the Set registered under key, building and registering
// it with build if absent. Errors from build are returned as is and nothing
// is registered. build may itself request other keys from r.
func (r *Registry) GetOrCreate(key string, build func() (Set, error)) (Set, error) {
	if s, ok := r.Lookup(key); ok {
		return s, nil
	}

	v, err, _ := r.flight.Do(key, func() (interface{}, error) {
		if s, ok := r.Lookup(key); ok {
			return s, nil
		}

		s, err := build()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "nil set built for %s", key)
		}
		if s.Key() != key {
			return nil, errors.Wrapf(ErrInvalidParameter, "set built for %s reports key %s", key, s.Key())
		}

		r.mut.Lock()
		defer r.mut.Unlock()
		if existing, ok := r.sets.Get(key); ok {
			return existing, nil
		}
		r.sets.Put(key, s)
		log.Debug("canonical set registered", "key", key, "order", s.Order().String())

		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Set), nil
}
