// Package gesture holds the named pose signatures built during training and
// matches captured poses against them.
package gesture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ayusman/mudra/internal/pose"
)

// Unknown is what Recognize reports when no trained gesture matches.
const Unknown = "unknown"

var (
	// ErrEmptyName is returned when training a gesture without a name.
	ErrEmptyName = errors.New("gesture name is empty")
	// ErrDuplicateName is returned when a name is already trained.
	ErrDuplicateName = errors.New("gesture name already trained")
	// ErrDuplicateSignature is returned under PolicyStrict when the pose is
	// already trained under another name.
	ErrDuplicateSignature = errors.New("pose already trained")
)

// Policy decides which training attempts a Registry rejects.
type Policy string

const (
	// PolicyPermissive rejects only reused names. Several names may share
	// one pose; lookups return the earliest trained.
	PolicyPermissive Policy = "permissive"
	// PolicyStrict additionally rejects a pose already bound to another name.
	PolicyStrict Policy = "strict"
)

// ParsePolicy validates a policy name. The empty string means permissive.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyStrict:
		return PolicyStrict, nil
	}
	return "", fmt.Errorf("unknown registry policy %q", s)
}

// Entry is one trained gesture.
type Entry struct {
	Name      string         `json:"name"`
	Signature pose.Signature `json:"signature"`
}

// Registry maps gesture names to pose signatures in training order.
type Registry struct {
	policy  Policy
	mu      sync.RWMutex
	entries []Entry
	byName  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry(policy Policy) *Registry {
	if policy == "" {
		policy = PolicyPermissive
	}
	return &Registry{
		policy: policy,
		byName: make(map[string]int),
	}
}

// Policy returns the registry's duplicate policy.
func (r *Registry) Policy() Policy {
	return r.policy
}

// Train binds name to sig. A rejected attempt leaves the registry unchanged.
func (r *Registry) Train(name string, sig pose.Signature) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if r.policy == PolicyStrict {
		if owner, ok := r.lookup(sig); ok {
			return fmt.Errorf("%w as %q", ErrDuplicateSignature, owner)
		}
	}

	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Name: name, Signature: sig})
	return nil
}

// Lookup returns the name of the first trained gesture whose signature equals sig.
func (r *Registry) Lookup(sig pose.Signature) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(sig)
}

func (r *Registry) lookup(sig pose.Signature) (string, bool) {
	for _, e := range r.entries {
		if e.Signature == sig {
			return e.Name, true
		}
	}
	return "", false
}

// Recognize returns the matching gesture name, or Unknown.
func (r *Registry) Recognize(sig pose.Signature) string {
	if name, ok := r.Lookup(sig); ok {
		return name
	}
	return Unknown
}

// Get returns the signature trained under name.
func (r *Registry) Get(name string) (pose.Signature, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byName[name]
	if !ok {
		return pose.Signature{}, false
	}
	return r.entries[i].Signature, true
}

// Remove forgets a gesture. It reports whether the name was trained.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byName[name]
	if !ok {
		return false
	}

	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	delete(r.byName, name)
	for j := i; j < len(r.entries); j++ {
		r.byName[r.entries[j].Name] = j
	}
	return true
}

// Entries returns a copy of every trained gesture in training order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns the trained names in training order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of trained gestures.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
