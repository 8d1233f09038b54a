package fields

import (
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrInvalidRegistration marks registrations with an empty kind or a missing
// handler. Match it with errors.Is.
var ErrInvalidRegistration = errors.New("fields: invalid registration")

// Registry maps a schema kind to the Handler that interprets values of that
// kind. It is safe for concurrent registration and lookup. The zero value is
// not usable; construct one with NewRegistry or NewDefaultRegistry and pass it
// to whichever component needs kind resolution.
type Registry struct {
	mu       sync.RWMutex
	handlers map[schema.Kind]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[schema.Kind]Handler)}
}

// NewDefaultRegistry creates a registry with the built-in handlers for
// string, number, integer, boolean and object. Arrays stay unregistered.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterDefaults(reg)
	return reg
}

// RegisterDefaults installs the built-in handlers on reg. Integer shares the
// number handler.
func RegisterDefaults(reg *Registry) {
	if reg == nil {
		return
	}
	number := Number()
	reg.MustRegister(schema.KindString, String())
	reg.MustRegister(schema.KindNumber, number)
	reg.MustRegister(schema.KindInteger, number)
	reg.MustRegister(schema.KindBoolean, Boolean())
	reg.MustRegister(schema.KindObject, Object())
}

// Register binds kind to handler, replacing any previous binding.
func (r *Registry) Register(kind schema.Kind, handler Handler) error {
	if r == nil {
		return errors.New("fields: registry is nil")
	}
	trimmed := schema.Kind(strings.TrimSpace(string(kind)))
	if trimmed == "" {
		return errors.Wrap(ErrInvalidRegistration, "kind is required")
	}
	if handler == nil {
		return errors.Wrapf(ErrInvalidRegistration, "handler for %q is required", trimmed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handlers == nil {
		r.handlers = make(map[schema.Kind]Handler)
	}
	r.handlers[trimmed] = handler
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind schema.Kind, handler Handler) {
	if err := r.Register(kind, handler); err != nil {
		panic(err)
	}
}

// RegisterMany registers every entry in kind order. Entries with a nil
// handler are skipped; the first invalid kind aborts the batch.
func (r *Registry) RegisterMany(handlers map[schema.Kind]Handler) error {
	kinds := make([]schema.Kind, 0, len(handlers))
	for kind := range handlers {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		handler := handlers[kind]
		if handler == nil {
			continue
		}
		if err := r.Register(kind, handler); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the handler bound to kind. A miss means the kind is
// unsupported; callers degrade instead of failing.
func (r *Registry) Resolve(kind schema.Kind) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[kind]
	return handler, ok
}

// ResolveNode resolves the handler for node's effective kind.
func (r *Registry) ResolveNode(node *schema.Node) (Handler, bool) {
	return r.Resolve(schema.FieldKind(node))
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind schema.Kind) bool {
	_, ok := r.Resolve(kind)
	return ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []schema.Kind {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]schema.Kind, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
