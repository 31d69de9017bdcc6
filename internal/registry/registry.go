// Package registry holds the reader and command registrations the replay
// engine resolves string ids against. Registries are explicit objects passed
// into the engine's environment, never package-level state, so a replay is
// deterministic and testable in isolation.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sightglass/provenance/internal/model"
)

// Reader loads an artifact from one or more local paths. The result is
// checked by the engine; anything that is not an artifact fails the replay.
type Reader func(paths []string) (any, error)

// Command executes a registered application command against a context with
// the given keyword parameters.
type Command func(ctx Context, params map[string]any) (any, error)

// Context carries the window and artifact a command operates on. Window is
// nil when the command ran against a bare artifact.
type Context struct {
	Window   model.Window
	Artifact model.Artifact
}

// NotFoundError reports an id with no registration. Suggestions lists
// registered ids close enough to be likely typos.
type NotFoundError struct {
	Kind        string // "reader" or "command"
	ID          string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("no %s recorded for this artifact", e.Kind)
	}
	msg := fmt.Sprintf("%s %q is not registered", e.Kind, e.ID)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Readers maps reader plugin ids to reader functions.
type Readers struct {
	mu   sync.RWMutex
	byID map[string]Reader
}

func NewReaders() *Readers {
	return &Readers{byID: make(map[string]Reader)}
}

// Register adds a reader under id. It panics on duplicate registration,
// which is a programming error at startup.
func (r *Readers) Register(id string, fn Reader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[id]; exists {
		panic(fmt.Sprintf("registry: duplicate reader registration for %q", id))
	}
	r.byID[id] = fn
}

// Resolve returns the reader registered under id, or a NotFoundError.
func (r *Readers) Resolve(id string) (Reader, error) {
	r.mu.RLock()
	fn, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Kind: "reader", ID: id, Suggestions: suggest(id, r.IDs())}
	}
	return fn, nil
}

// IDs returns the sorted ids of all registered readers.
func (r *Readers) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.byID)
}

// Commands maps command ids to command functions.
type Commands struct {
	mu   sync.RWMutex
	byID map[string]Command
}

func NewCommands() *Commands {
	return &Commands{byID: make(map[string]Command)}
}

// Register adds a command under id. It panics on duplicate registration.
func (c *Commands) Register(id string, fn Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byID[id]; exists {
		panic(fmt.Sprintf("registry: duplicate command registration for %q", id))
	}
	c.byID[id] = fn
}

// Resolve returns the command registered under id, or a NotFoundError.
func (c *Commands) Resolve(id string) (Command, error) {
	c.mu.RLock()
	fn, ok := c.byID[id]
	c.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Kind: "command", ID: id, Suggestions: suggest(id, c.IDs())}
	}
	return fn, nil
}

// IDs returns the sorted ids of all registered commands.
func (c *Commands) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.byID)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
