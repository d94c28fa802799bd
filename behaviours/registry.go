package behaviours

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownBehaviour rejects round names outside the registered set.
var ErrUnknownBehaviour = errors.New("unknown behaviour")

// Registry maps round names onto behaviours. The set is closed at wiring
// time; looking up an unregistered name is a typed error, not a
// missing-attribute fault.
type Registry struct {
	mu         sync.Mutex
	behaviours map[string]Behaviour
}

// NewRegistry creates an empty behaviour registry.
func NewRegistry() *Registry {
	return &Registry{behaviours: make(map[string]Behaviour)}
}

// Register adds a behaviour under its own name.
func (r *Registry) Register(b Behaviour) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.behaviours[b.Name()] = b
}

// Get resolves a round name to its behaviour.
func (r *Registry) Get(name string) (Behaviour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.behaviours[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBehaviour, name)
	}
	return b, nil
}

// DefaultRegistry registers the full behaviour set of the agent.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CheckFunds{})
	r.Register(&EngageTweets{})
	r.Register(&ActionTweet{})
	r.Register(&CollectFeedback{})
	r.Register(&ActionPreparation{})
	return r
}
