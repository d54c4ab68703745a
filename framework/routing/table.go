package routing

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/km-arc/go-mvc/framework/container"
	gohttp "github.com/km-arc/go-mvc/framework/http"
	"github.com/km-arc/go-mvc/framework/mvc"
	"github.com/km-arc/go-mvc/framework/scan"
)

var (
	// ErrHandlerNotFound is returned when a mapping names a missing or
	// unexported method.
	ErrHandlerNotFound = errors.New("routing: handler method not found")
	// ErrBadPattern is returned when a path does not compile as a regexp.
	ErrBadPattern = errors.New("routing: invalid route pattern")
	// ErrParamOutOfRange is returned when a mapping names more parameters
	// than the handler takes.
	ErrParamOutOfRange = errors.New("routing: parameter index out of range")
)

var (
	requestType         = reflect.TypeOf((*http.Request)(nil))
	responseType        = reflect.TypeOf((*http.ResponseWriter)(nil)).Elem()
	wrappedRequestType  = reflect.TypeOf((*gohttp.Request)(nil))
	wrappedResponseType = reflect.TypeOf((*gohttp.Response)(nil))
)

// Reserved ParamIndexMap keys for the request and response positions.
var (
	RequestKey  = scan.TypeName(requestType)
	ResponseKey = scan.TypeName(responseType)
)

// ParamIndexMap maps a request parameter name, RequestKey or ResponseKey to
// a handler argument position.
type ParamIndexMap map[string]int

// Route is one compiled mapping. It is never mutated after Build.
type Route struct {
	Pattern *regexp.Regexp
	Path    string
	Bean    string
	Handler string
	Params  ParamIndexMap

	method reflect.Value
	in     []reflect.Type
}

// NumIn returns the handler's parameter count.
func (rt *Route) NumIn() int { return len(rt.in) }

func (rt *Route) String() string {
	return rt.Path + " => " + rt.Bean + "." + rt.Handler
}

// RouteError reports a mapping that could not be compiled.
type RouteError struct {
	Bean    string
	Handler string
	Path    string
	Err     error
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("route %s => %s.%s: %v", e.Path, e.Bean, e.Handler, e.Err)
}

func (e *RouteError) Unwrap() error { return e.Err }

// ── Table ────────────────────────────────────────────────────────────────────

// Table is the ordered list of routes. Order is discovery order, not
// specificity; the first matching route wins.
type Table struct {
	routes []*Route
}

// Routes returns the routes in discovery order.
func (t *Table) Routes() []*Route {
	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of routes.
func (t *Table) Len() int { return len(t.routes) }

// Match returns the first route whose pattern matches path in full.
func (t *Table) Match(path string) (*Route, bool) {
	for _, rt := range t.routes {
		if rt.Pattern.MatchString(path) {
			return rt, true
		}
	}
	return nil, false
}

// ── Build ────────────────────────────────────────────────────────────────────

// Build compiles the routes of every controller bean, in bean order. A
// controller's base path comes from the path tag on its mvc.Controller
// field; each mapping's pattern is the base path joined with the mapping
// path, repeated slashes collapsed.
//
// A mapping that fails to compile is logged and skipped; the returned error
// joins one *RouteError per failure.
func Build(beans []*container.Bean, log *zap.Logger) (*Table, error) {
	if log == nil {
		log = zap.NewNop()
	}

	t := &Table{}
	var errs []error
	for _, b := range beans {
		role, tag := mvc.RoleOf(reflect.TypeOf(b.Instance))
		if role != mvc.RoleController {
			continue
		}
		mapper, ok := b.Instance.(mvc.Mapper)
		if !ok {
			continue
		}
		base := tag.Get(mvc.TagPath)

		for _, m := range mapper.RequestMappings() {
			rt, err := compile(b, base, m)
			if err != nil {
				log.Warn("mapping skipped", zap.Error(err))
				errs = append(errs, err)
				continue
			}
			t.routes = append(t.routes, rt)
			log.Info("mapped", zap.String("path", rt.Path), zap.String("handler", rt.Bean+"."+rt.Handler))
		}
	}
	return t, errors.Join(errs...)
}

func compile(b *container.Bean, base string, m mvc.Mapping) (*Route, error) {
	path := gohttp.CollapseSlashes(base + m.Path)
	fail := func(err error) error {
		return &RouteError{Bean: b.Name, Handler: m.Handler, Path: path, Err: err}
	}

	method := reflect.ValueOf(b.Instance).MethodByName(m.Handler)
	if !method.IsValid() {
		return nil, fail(ErrHandlerNotFound)
	}

	pattern, err := regexp.Compile("^(?:" + path + ")$")
	if err != nil {
		return nil, fail(fmt.Errorf("%w: %w", ErrBadPattern, err))
	}

	mt := method.Type()
	in := make([]reflect.Type, mt.NumIn())
	for i := range in {
		in[i] = mt.In(i)
	}

	params := make(ParamIndexMap)
	for i, name := range m.Params {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if i >= len(in) {
			return nil, fail(fmt.Errorf("%w: %q at %d, handler takes %d", ErrParamOutOfRange, name, i, len(in)))
		}
		params[name] = i
	}
	for i, t := range in {
		switch t {
		case requestType, wrappedRequestType:
			params[RequestKey] = i
		case responseType, wrappedResponseType:
			params[ResponseKey] = i
		}
	}

	return &Route{
		Pattern: pattern,
		Path:    path,
		Bean:    b.Name,
		Handler: m.Handler,
		Params:  params,
		method:  method,
		in:      in,
	}, nil
}
