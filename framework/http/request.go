package http

import (
	"net/http"
	"net/url"
	"strings"
)

// Request wraps *http.Request together with the deployment context path the
// application is mounted under.
type Request struct {
	raw         *http.Request
	contextPath string
}

// NewRequest wraps a standard *http.Request. contextPath may be empty.
func NewRequest(r *http.Request, contextPath string) *Request {
	return &Request{raw: r, contextPath: strings.TrimRight(contextPath, "/")}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// Path returns the URL path as received.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContextPath returns the prefix the application is mounted under.
func (req *Request) ContextPath() string { return req.contextPath }

// LogicalPath strips the context path and collapses repeated slashes. The
// context path only matches whole segments.
//
//	// context "/app", request "/app//user///show" → "/user/show"
//	// context "/app", request "/apple/x"          → "/apple/x"
func (req *Request) LogicalPath() string {
	p := req.raw.URL.Path
	if rest, ok := strings.CutPrefix(p, req.contextPath); ok && (rest == "" || rest[0] == '/') {
		p = rest
	}
	return CollapseSlashes(p)
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// ── Parameters ───────────────────────────────────────────────────────────────

// Params returns every request parameter: query string merged with an
// url-encoded body.
func (req *Request) Params() (url.Values, error) {
	if err := req.raw.ParseForm(); err != nil {
		return nil, err
	}
	return req.raw.Form, nil
}

// Param returns a parameter as one string, rendered by JoinValues. A missing
// parameter yields fallback, if given.
func (req *Request) Param(key string, fallback ...string) string {
	params, err := req.Params()
	if err == nil {
		if vals, ok := params[key]; ok {
			return JoinValues(vals)
		}
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

// Has returns true if the parameter is present.
func (req *Request) Has(key string) bool {
	params, err := req.Params()
	if err != nil {
		return false
	}
	_, ok := params[key]
	return ok
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// JoinValues renders a parameter's values as one string: values joined
// with ", ", every '[' and ']' removed.
//
//	JoinValues([]string{"a[1]", "b"})  // "a1, b"
func JoinValues(vals []string) string {
	return bracketStripper.Replace(strings.Join(vals, ", "))
}

var bracketStripper = strings.NewReplacer("[", "", "]", "")

// CollapseSlashes replaces every run of '/' with a single '/'.
func CollapseSlashes(p string) string {
	if !strings.Contains(p, "//") {
		return p
	}
	var b strings.Builder
	b.Grow(len(p))
	prev := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '/' {
			if prev {
				continue
			}
			prev = true
		} else {
			prev = false
		}
		b.WriteByte(c)
	}
	return b.String()
}
