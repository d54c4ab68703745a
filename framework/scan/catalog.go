package scan

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnsupportedPrototype is returned when Add receives something that is
	// neither a struct, an interface pointer, nor a constructor.
	ErrUnsupportedPrototype = errors.New("scan: unsupported prototype")
	// ErrConflictingClass indicates two different prototypes for one class name.
	ErrConflictingClass = errors.New("scan: conflicting class registration")
	// ErrEmptyRoot is returned when Scan is called without a namespace.
	ErrEmptyRoot = errors.New("scan: empty root namespace")
	// ErrUnresolvedRoot is returned when no class lives in or below the root.
	ErrUnresolvedRoot = errors.New("scan: root namespace not found")
	// ErrUnknownClass is returned by Describe for names the catalog never saw.
	ErrUnknownClass = errors.New("scan: unknown class")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Class is one entry of the catalog.
type Class struct {
	// Name is the fully-qualified name: "<import path>.<TypeName>".
	Name string
	// Type is the named struct or interface type.
	Type reflect.Type

	ctor reflect.Value // optional func() *T or func() (*T, error)
}

// Package returns the namespace the class lives in.
func (c *Class) Package() string { return c.Type.PkgPath() }

// IsInterface reports whether the class is an interface and therefore
// never instantiated.
func (c *Class) IsInterface() bool { return c.Type.Kind() == reflect.Interface }

// New builds an instance through the registered constructor, or through
// default construction when none was given. The result is always a pointer
// to the struct. A panic in the constructor is returned as an error.
func (c *Class) New() (instance any, err error) {
	if c.IsInterface() {
		return nil, fmt.Errorf("scan: %s is an interface", c.Name)
	}
	defer func() {
		if rec := recover(); rec != nil {
			instance = nil
			err = fmt.Errorf("scan: constructing %s panicked: %v", c.Name, rec)
		}
	}()

	if !c.ctor.IsValid() {
		return reflect.New(c.Type).Interface(), nil
	}

	out := c.ctor.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	if out[0].IsNil() {
		return nil, fmt.Errorf("scan: constructor for %s returned nil", c.Name)
	}
	return out[0].Interface(), nil
}

// ── Catalog ──────────────────────────────────────────────────────────────────

// Catalog is the manifest of classes the scanner enumerates. Packages add
// their types from init(), the way database/sql drivers register:
//
//	func init() {
//	    scan.Register((*UserService)(nil), (*UserServiceImpl)(nil))
//	}
type Catalog struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{classes: make(map[string]*Class)}
}

// Default is the process-wide catalog used by Register and the application.
var Default = NewCatalog()

// Register adds prototypes to the Default catalog and panics on invalid
// input. It is meant to be called from init().
func Register(protos ...any) {
	if err := Default.Add(protos...); err != nil {
		panic(err)
	}
}

// Add registers prototypes. Accepted forms:
//
//	(*T)(nil), &T{}, T{}         struct T, built by default construction
//	(*I)(nil)                    interface I, enumerated but never built
//	func() *T                    constructor for struct T
//	func() (*T, error)           fallible constructor for struct T
//
// Adding the same prototype twice is a no-op.
func (c *Catalog) Add(protos ...any) error {
	for _, p := range protos {
		class, err := classOf(p)
		if err != nil {
			return err
		}
		if err := c.add(class); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) add(class *Class) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.classes[class.Name]; ok {
		if old.Type == class.Type && sameCtor(old.ctor, class.ctor) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrConflictingClass, class.Name)
	}
	c.classes[class.Name] = class
	return nil
}

func sameCtor(a, b reflect.Value) bool {
	if a.IsValid() != b.IsValid() {
		return false
	}
	return !a.IsValid() || a.Pointer() == b.Pointer()
}

func classOf(p any) (*Class, error) {
	t := reflect.TypeOf(p)
	if t == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedPrototype)
	}

	if t.Kind() == reflect.Func {
		return constructorClass(reflect.ValueOf(p))
	}

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Interface:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPrototype, t)
	}
	name := TypeName(t)
	if name == "" {
		return nil, fmt.Errorf("%w: unnamed type %s", ErrUnsupportedPrototype, t)
	}
	return &Class{Name: name, Type: t}, nil
}

func constructorClass(fn reflect.Value) (*Class, error) {
	t := fn.Type()
	if t.NumIn() != 0 || t.NumOut() < 1 || t.NumOut() > 2 {
		return nil, fmt.Errorf("%w: constructor %s", ErrUnsupportedPrototype, t)
	}
	if t.NumOut() == 2 && t.Out(1) != errorType {
		return nil, fmt.Errorf("%w: constructor %s", ErrUnsupportedPrototype, t)
	}
	out := t.Out(0)
	if out.Kind() != reflect.Ptr || out.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: constructor must return a struct pointer, got %s", ErrUnsupportedPrototype, out)
	}
	name := TypeName(out)
	if name == "" {
		return nil, fmt.Errorf("%w: unnamed type %s", ErrUnsupportedPrototype, out)
	}
	return &Class{Name: name, Type: out.Elem(), ctor: fn}, nil
}

// Lookup returns the class registered under name.
func (c *Catalog) Lookup(name string) (*Class, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	class, ok := c.classes[name]
	return class, ok
}

// Len returns the number of registered classes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.classes)
}

// ── Scan ─────────────────────────────────────────────────────────────────────

// Scan returns the names of every class in root and all namespaces below
// it. The walk is depth-first: a namespace's own classes come first, sorted
// by simple name, followed by its sub-namespaces sorted by segment.
//
// A root that resolves to nothing is an error; startup must not continue
// with a partial bean universe.
func (c *Catalog) Scan(root string) ([]string, error) {
	root = strings.Trim(strings.TrimSpace(root), "/")
	if root == "" {
		return nil, ErrEmptyRoot
	}

	c.mu.RLock()
	byPkg := make(map[string][]*Class)
	for _, class := range c.classes {
		pkg := class.Package()
		if pkg == root || strings.HasPrefix(pkg, root+"/") {
			byPkg[pkg] = append(byPkg[pkg], class)
		}
	}
	c.mu.RUnlock()

	if len(byPkg) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedRoot, root)
	}

	var names []string
	walk(root, byPkg, &names)
	return names, nil
}

func walk(ns string, byPkg map[string][]*Class, names *[]string) {
	classes := byPkg[ns]
	sort.Slice(classes, func(i, j int) bool { return classes[i].Type.Name() < classes[j].Type.Name() })
	for _, class := range classes {
		*names = append(*names, class.Name)
	}

	children := make(map[string]struct{})
	prefix := ns + "/"
	for pkg := range byPkg {
		if rest, ok := strings.CutPrefix(pkg, prefix); ok {
			seg, _, _ := strings.Cut(rest, "/")
			children[seg] = struct{}{}
		}
	}
	segs := make([]string, 0, len(children))
	for seg := range children {
		segs = append(segs, seg)
	}
	sort.Strings(segs)
	for _, seg := range segs {
		walk(prefix+seg, byPkg, names)
	}
}
