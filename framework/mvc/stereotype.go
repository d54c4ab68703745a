package mvc

import (
	"reflect"
)

// Struct tag keys read by the scanner, the injector and the route builder.
const (
	TagPath   = "path"
	TagBean   = "bean"
	TagInject = "inject"
)

// ── Stereotypes ──────────────────────────────────────────────────────────────

// Controller marks a struct as a request-handling bean.
// Embed it; a path tag on the embedded field sets the base path of every
// mapping the controller declares.
//
//	type UserController struct {
//	    mvc.Controller `path:"/user"`
//	    Users service.UserService `inject:""`
//	}
type Controller struct{}

// Service marks a struct as a service bean. An optional bean tag on the
// embedded field overrides the derived bean name.
//
//	type UserServiceImpl struct {
//	    mvc.Service `bean:"userService"`
//	}
type Service struct{}

// Role is the stereotype a class carries.
type Role int

const (
	RolePlain Role = iota
	RoleController
	RoleService
)

func (r Role) String() string {
	switch r {
	case RoleController:
		return "Controller"
	case RoleService:
		return "Service"
	default:
		return "Plain"
	}
}

var (
	controllerType = reflect.TypeOf(Controller{})
	serviceType    = reflect.TypeOf(Service{})
)

// RoleOf reports the stereotype of t and the tag of its marker field.
// Only direct anonymous fields are considered; the first marker wins.
func RoleOf(t reflect.Type) (Role, reflect.StructTag) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return RolePlain, ""
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		switch f.Type {
		case controllerType:
			return RoleController, f.Tag
		case serviceType:
			return RoleService, f.Tag
		}
	}
	return RolePlain, ""
}

// ── Mappings ─────────────────────────────────────────────────────────────────

// Mapping binds a path to a handler method of a controller.
//
// Params is aligned with the handler's parameter positions: a non-empty
// entry names the request parameter bound to that position, an empty entry
// leaves it unnamed. Positions typed *http.Request or http.ResponseWriter
// need no entry.
type Mapping struct {
	Path    string
	Handler string
	Params  []string
}

// Mapper is implemented by controllers that expose handler methods.
type Mapper interface {
	RequestMappings() []Mapping
}

// Initializer is implemented by beans that need work done after all of
// their dependencies have been injected.
type Initializer interface {
	Initialize() error
}
