package command

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mattjoyce/herald/internal/report"
)

// HandlerFunc is an invocable sub-command body. It receives the raw token
// tail of the dispatched line and reports through whatever sink it closed
// over. Handlers interpret and validate their own arguments.
type HandlerFunc func(args []string)

// Entry is one registered sub-command: a handler paired with its declared
// argument tags, or a nested registry for sub-dispatch. Args entries are
// display tags only ("<required>" / "[optional]"); the dispatcher performs
// no arity validation against them.
type Entry struct {
	Name    string
	Handler HandlerFunc
	Args    []string
	Sub     *Registry
}

// Registry is a mutable mapping from sub-command name to Entry. Enumeration
// is always lexicographic by name regardless of registration order.
//
// A single RWMutex guards mutation, lookup and enumeration. The lock is held
// per call only, never across handler invocation, so a slow handler cannot
// block registration from another goroutine.
type Registry struct {
	mu          sync.RWMutex
	name        string
	prefix      string
	description string
	entries     map[string]*Entry
}

// NewRegistry creates an empty registry for the named top-level command.
func NewRegistry(name, description string) *Registry {
	return &Registry{
		name:        name,
		prefix:      fmt.Sprintf("[%s] ", name),
		description: description,
		entries:     make(map[string]*Entry),
	}
}

// Name returns the top-level command name this registry serves.
func (r *Registry) Name() string {
	return r.name
}

// Prefix returns the free-text label prepended to all diagnostic output
// from this registry.
func (r *Registry) Prefix() string {
	return r.prefix
}

// Description returns the registry description used as the help title.
func (r *Registry) Description() string {
	return r.description
}

// Register inserts or overwrites the entry for name. Overwrite is silent
// last-write-wins so that later plugins may override built-ins.
func (r *Registry) Register(name string, handler HandlerFunc, args ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &Entry{Name: name, Handler: handler, Args: args}
}

// RegisterSub inserts or overwrites name as a nested sub-registry. The
// dispatcher re-dispatches the token tail into sub when name matches.
func (r *Registry) RegisterSub(name string, sub *Registry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &Entry{Name: name, Sub: sub}
}

// Unregister removes the entry for name. Removing an absent name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[name]
	return entry, ok
}

// Names returns the currently registered names sorted lexicographically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usages returns one help usage per entry, sorted by name. Nested
// registries render a generic sub-command tag.
func (r *Registry) Usages() []report.Usage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	usages := make([]report.Usage, 0, len(names))
	for _, name := range names {
		entry := r.entries[name]
		args := entry.Args
		if entry.Sub != nil {
			args = []string{"<sub-command>"}
		}
		usages = append(usages, report.Usage{Name: name, Args: args})
	}
	return usages
}
