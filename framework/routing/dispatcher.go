package routing

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	gohttp "github.com/km-arc/go-mvc/framework/http"
)

var (
	// ErrBadParam is returned when a request parameter does not convert to
	// the handler's declared type.
	ErrBadParam = errors.New("routing: bad request parameter")
	// ErrUnsupportedParamType is returned for handler parameter types other
	// than strings and integers.
	ErrUnsupportedParamType = errors.New("routing: unsupported parameter type")
	// ErrHandlerPanic wraps a panic raised while binding or invoking.
	ErrHandlerPanic = errors.New("routing: handler panicked")
)

var (
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
	stringType = reflect.TypeOf("")
)

// DispatchError reports a request that matched a route but failed in
// binding or invocation.
type DispatchError struct {
	Path  string
	Route string
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s (%s): %v", e.Path, e.Route, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// ── Dispatcher ───────────────────────────────────────────────────────────────

// Dispatcher routes requests to handler methods. It only reads its table,
// so one Dispatcher serves any number of concurrent requests.
type Dispatcher struct {
	table       *Table
	contextPath string
	log         *zap.Logger
}

// NewDispatcher creates a Dispatcher for a table mounted under contextPath.
func NewDispatcher(table *Table, contextPath string, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if table == nil {
		table = &Table{}
	}
	return &Dispatcher{table: table, contextPath: contextPath, log: log}
}

// Table returns the route table.
func (d *Dispatcher) Table() *Table { return d.table }

// ServeHTTP dispatches every method alike. Failures are logged, never
// propagated.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := d.Dispatch(w, r); err != nil {
		d.log.Error("dispatch failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("uri", r.URL.RequestURI()),
			zap.Error(err))
	}
}

// Dispatch finds the first route matching the request's logical path,
// binds its arguments and invokes it.
//
// An unmatched path gets a 404 with gohttp.NotFoundBody and returns nil.
// A bind or invocation failure returns a *DispatchError; nothing is
// written for a bind failure.
func (d *Dispatcher) Dispatch(w http.ResponseWriter, r *http.Request) (err error) {
	req := gohttp.NewRequest(r, d.contextPath)
	res := gohttp.NewResponse(w)
	path := req.LogicalPath()

	rt, ok := d.table.Match(path)
	if !ok {
		if werr := res.NotFound(); werr != nil {
			d.log.Debug("writing not found", zap.Error(werr))
		}
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = &DispatchError{Path: path, Route: rt.String(), Err: fmt.Errorf("%w: %v", ErrHandlerPanic, rec)}
		}
	}()

	args, err := rt.bind(req, res)
	if err != nil {
		return &DispatchError{Path: path, Route: rt.String(), Err: err}
	}
	if err := rt.invoke(args); err != nil {
		return &DispatchError{Path: path, Route: rt.String(), Err: err}
	}
	return nil
}

// ── Binding ──────────────────────────────────────────────────────────────────

// bind assembles the argument list: named parameters first, then the
// request and response, which always win. Unbound positions get zero values.
func (rt *Route) bind(req *gohttp.Request, res *gohttp.Response) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(rt.in))

	params, err := req.Params()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadParam, err)
	}
	for name, vals := range params {
		if name == RequestKey || name == ResponseKey {
			continue
		}
		idx, ok := rt.Params[name]
		if !ok || rt.reserved(idx) {
			continue
		}
		v, err := convert(rt.in[idx], gohttp.JoinValues(vals))
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		args[idx] = v
	}

	if idx, ok := rt.Params[RequestKey]; ok {
		if rt.in[idx] == wrappedRequestType {
			args[idx] = reflect.ValueOf(req)
		} else {
			args[idx] = reflect.ValueOf(req.Raw())
		}
	}
	if idx, ok := rt.Params[ResponseKey]; ok {
		if rt.in[idx] == wrappedResponseType {
			args[idx] = reflect.ValueOf(res)
		} else {
			args[idx] = reflect.ValueOf(res.Raw())
		}
	}

	for i, a := range args {
		if !a.IsValid() {
			args[i] = reflect.Zero(rt.in[i])
		}
	}
	return args, nil
}

func (rt *Route) reserved(idx int) bool {
	if i, ok := rt.Params[RequestKey]; ok && i == idx {
		return true
	}
	if i, ok := rt.Params[ResponseKey]; ok && i == idx {
		return true
	}
	return false
}

// convert turns a raw parameter into t. Strings pass through; integers are
// parsed. Named types over those kinds are accepted, and an interface type
// a string satisfies receives the raw string.
func convert(t reflect.Type, s string) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Interface:
		if !stringType.AssignableTo(t) {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedParamType, t)
		}
		v.Set(reflect.ValueOf(s))
	case reflect.String:
		v.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrBadParam, err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrBadParam, err)
		}
		v.SetUint(n)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedParamType, t)
	}
	return v, nil
}

func (rt *Route) invoke(args []reflect.Value) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, rec)
		}
	}()

	var out []reflect.Value
	if rt.method.Type().IsVariadic() {
		out = rt.method.CallSlice(args)
	} else {
		out = rt.method.Call(args)
	}
	if n := len(out); n > 0 && out[n-1].Type() == errorType && !out[n-1].IsNil() {
		return out[n-1].Interface().(error)
	}
	return nil
}
