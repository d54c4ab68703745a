package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/km-arc/go-mvc/framework/scan"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a value from the container.
type Factory func(c *Container) any

// ── Container ─────────────────────────────────────────────────────────────────

// Container owns every singleton of the application: framework services
// bound by providers and the beans produced from the scanned catalog.
//
// Each instance is stored once under its canonical name; every other key
// (interface names, type names, explicit aliases) points at that name
// through the alias table.
type Container struct {
	mu sync.RWMutex

	// name → lazily built singleton factory
	bindings map[string]Factory

	// name → resolved singleton instance
	instances map[string]any

	// alias → canonical name
	aliases map[string]string

	// scanned beans in registration order
	beans []*Bean

	log *zap.Logger
}

// New creates an empty container.
func New() *Container {
	c := &Container{
		bindings:  make(map[string]Factory),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
		log:       zap.NewNop(),
	}
	c.Instance("container", c)
	return c
}

// SetLogger sets the logger used to report per-bean failures.
func (c *Container) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.mu.Lock()
	c.log = l
	c.mu.Unlock()
}

func (c *Container) logger() *zap.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.log
}

// ── Registration ──────────────────────────────────────────────────────────────

// Singleton registers a factory whose result is cached after first resolution.
//
//	c.Singleton("config", func(c *container.Container) any {
//	    return config.Load()
//	})
func (c *Container) Singleton(name string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(name)
	delete(c.instances, key)
	c.bindings[key] = factory
}

// Instance registers a pre-built value.
//
//	c.Instance("config", cfg)
func (c *Container) Instance(name string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(name)
	delete(c.bindings, key)
	c.instances[key] = instance
}

// Alias registers an alternative name for an existing entry.
//
//	c.Alias("config", "configuration")
func (c *Container) Alias(name, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", name))
	}
	c.aliases[alias] = c.canonical(name)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves a name and panics if nothing is bound under it.
//
//	cfg := c.Make("config").(*config.Config)
func (c *Container) Make(name string) any {
	instance, ok := c.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("container: no binding registered for [%s]", name))
	}
	return instance
}

// Lookup resolves a name, building a lazy singleton on first use.
func (c *Container) Lookup(name string) (any, bool) {
	c.mu.RLock()
	key := c.canonical(name)
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst, true
	}
	factory, ok := c.bindings[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	// The factory may resolve other names, so it runs unlocked.
	instance := factory(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	if inst, ok := c.instances[key]; ok {
		return inst, true
	}
	c.instances[key] = instance
	return instance, true
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if a name or alias resolves to something.
func (c *Container) Bound(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(name)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved returns true if the name has been built at least once.
func (c *Container) Resolved(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(name)]
	return ok
}

// Bindings returns every canonical name, sorted.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Aliases returns every alias that points at name, sorted.
func (c *Container) Aliases(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(name)
	var out []string
	for alias, target := range c.aliases {
		if target == key {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// canonical resolves an alias to its canonical key (caller holds mu).
func (c *Container) canonical(name string) string {
	if target, ok := c.aliases[name]; ok {
		return target
	}
	return name
}

// TypeKey returns the fully-qualified type name of v, the key beans are
// aliased under.
//
//	key := container.TypeKey((*UserService)(nil))  // "example.com/app/service.UserService"
func TypeKey(v any) string {
	return scan.TypeName(reflect.TypeOf(v))
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	cfg := container.Resolve[*config.Config](c, "config")
func Resolve[T any](c *Container, name string) T {
	instance := c.Make(name)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), name, instance))
	}
	return typed
}

// TryResolve is like Resolve but reports failure instead of panicking.
func TryResolve[T any](c *Container, name string) (T, bool) {
	var zero T
	instance, ok := c.Lookup(name)
	if !ok {
		return zero, false
	}
	typed, ok := instance.(T)
	return typed, ok
}
