package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-mvc/framework/container"
	"github.com/km-arc/go-mvc/framework/internal/testbeans"
	"github.com/km-arc/go-mvc/framework/mvc"
	"github.com/km-arc/go-mvc/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// beans runs the container half of the boot sequence over the fixtures plus
// extra prototypes.
func beans(t *testing.T, extra ...any) []*container.Bean {
	t.Helper()
	cat := testbeans.Catalog()
	require.NoError(t, cat.Add(extra...))

	names, err := cat.Scan(testbeans.Root)
	require.NoError(t, err)
	for _, p := range extra {
		names = append(names, container.TypeKey(p))
	}

	c := container.New()
	require.NoError(t, c.RegisterBeans(cat, names))
	require.NoError(t, c.Inject())
	return c.Beans()
}

func paths(tbl *routing.Table) []string {
	var out []string
	for _, rt := range tbl.Routes() {
		out = append(out, rt.Path)
	}
	return out
}

// ── fixtures ─────────────────────────────────────────────────────────────────

type badMappings struct {
	mvc.Controller `path:"/bad"`
}

func (b *badMappings) RequestMappings() []mvc.Mapping {
	return []mvc.Mapping{
		{Path: "/gone", Handler: "Gone"},
		{Path: "/paren(", Handler: "Ok"},
		{Path: "/many", Handler: "Ok", Params: []string{"a", "b"}},
		{Path: "/ok", Handler: "Ok"},
	}
}

func (b *badMappings) Ok(a string) {}

type unmapped struct {
	mvc.Controller `path:"/none"`
}

// ── Build ────────────────────────────────────────────────────────────────────

func TestBuild_PathsInBeanOrder(t *testing.T) {
	t.Parallel()

	tbl, err := routing.Build(beans(t), nil)
	require.NoError(t, err)

	// "/greet//" + "/show" collapses to "/greet/show".
	assert.Equal(t, []string{"/greet/show", "/greet/count", "/math/square"}, paths(tbl))
	assert.Equal(t, 3, tbl.Len())
}

func TestBuild_ParamIndexMap(t *testing.T) {
	t.Parallel()

	tbl, err := routing.Build(beans(t), nil)
	require.NoError(t, err)
	routes := tbl.Routes()

	show := routes[0]
	assert.Equal(t, "greetController", show.Bean)
	assert.Equal(t, "Show", show.Handler)
	assert.Equal(t, routing.ParamIndexMap{"name": 0, routing.ResponseKey: 1}, show.Params)
	assert.Equal(t, 2, show.NumIn())

	count := routes[1]
	assert.Equal(t, routing.ParamIndexMap{routing.ResponseKey: 0}, count.Params)

	square := routes[2]
	assert.Equal(t, routing.ParamIndexMap{"n": 0, routing.RequestKey: 1, routing.ResponseKey: 2}, square.Params)
	assert.Equal(t, "/math/square => mathController.Square", square.String())
}

func TestBuild_ReservedKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "net/http.Request", routing.RequestKey)
	assert.Equal(t, "net/http.ResponseWriter", routing.ResponseKey)
}

func TestBuild_BadMappingsSkipped(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	tbl, err := routing.Build(beans(t, (*badMappings)(nil)), zap.New(core))
	require.Error(t, err)

	assert.ErrorIs(t, err, routing.ErrHandlerNotFound)
	assert.ErrorIs(t, err, routing.ErrBadPattern)
	assert.ErrorIs(t, err, routing.ErrParamOutOfRange)

	var re *routing.RouteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "badMappings", re.Bean)

	assert.Contains(t, paths(tbl), "/bad/ok")
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, 3, logs.FilterMessage("mapping skipped").Len())
}

func TestBuild_ControllerWithoutMappings(t *testing.T) {
	t.Parallel()

	tbl, err := routing.Build(beans(t, (*unmapped)(nil)), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
}

func TestBuild_LogsMappedRoutes(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	_, err := routing.Build(beans(t), zap.New(core))
	require.NoError(t, err)

	mapped := logs.FilterMessage("mapped").All()
	require.Len(t, mapped, 3)
	assert.Equal(t, "/greet/show", mapped[0].ContextMap()["path"])
	assert.Equal(t, "greetController.Show", mapped[0].ContextMap()["handler"])
}

// ── Match ────────────────────────────────────────────────────────────────────

func TestMatch(t *testing.T) {
	t.Parallel()

	tbl, err := routing.Build(beans(t), nil)
	require.NoError(t, err)

	tests := []struct {
		path    string
		handler string
		ok      bool
	}{
		{"/greet/show", "Show", true},
		{"/greet/count", "Count", true},
		{"/greet/show/extra", "", false},
		{"/prefix/greet/show", "", false},
		{"/math/square", "Square", true},
		{"/missing", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rt, ok := tbl.Match(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.handler, rt.Handler)
			} else {
				assert.Nil(t, rt)
			}
		})
	}
}

func TestMatch_EmptyTable(t *testing.T) {
	t.Parallel()

	tbl, err := routing.Build(nil, nil)
	require.NoError(t, err)
	_, ok := tbl.Match("/anything")
	assert.False(t, ok)
	assert.Zero(t, tbl.Len())
}
