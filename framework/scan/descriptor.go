package scan

import (
	"fmt"
	"path"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/km-arc/go-mvc/framework/mvc"
)

// Descriptor identifies a discoverable class and the bean it would become.
// It is immutable once built.
type Descriptor struct {
	Name      string
	Role      mvc.Role
	BeanName  string
	Type      reflect.Type
	Interface bool
}

// Describe builds the descriptor of a catalogued class. Services may carry
// an explicit bean name; controllers always use the derived one.
func (c *Catalog) Describe(name string) (Descriptor, error) {
	class, ok := c.Lookup(name)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}

	d := Descriptor{
		Name:      class.Name,
		Type:      class.Type,
		Interface: class.IsInterface(),
		BeanName:  LowerFirst(class.Type.Name()),
	}
	if d.Interface {
		return d, nil
	}

	role, tag := mvc.RoleOf(class.Type)
	d.Role = role
	if role == mvc.RoleService {
		if explicit := strings.TrimSpace(tag.Get(mvc.TagBean)); explicit != "" {
			d.BeanName = explicit
		}
	}
	return d, nil
}

// TypeName returns "<import path>.<Name>" for the nearest named type of t,
// unwrapping pointers. Unnamed types yield "".
//
//	TypeName(reflect.TypeOf(&http.Request{}))  // "net/http.Request"
func TypeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return ""
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if t.PkgPath() == "" {
		return name
	}
	return t.PkgPath() + "." + name
}

// SimpleName strips the namespace from a fully-qualified class name.
func SimpleName(name string) string {
	base := path.Base(name)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[i+1:]
	}
	return base
}

// LowerFirst lower-cases the first letter: "UserController" → "userController".
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
