package container_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-mvc/framework/container"
	"github.com/km-arc/go-mvc/framework/internal/testbeans/service"
)

func TestContainer_SelfBinding(t *testing.T) {
	t.Parallel()

	c := container.New()
	assert.Same(t, c, container.Resolve[*container.Container](c, "container"))
}

func TestContainer_SingletonBuiltOnce(t *testing.T) {
	t.Parallel()

	c := container.New()
	var builds atomic.Int32
	c.Singleton("thing", func(*container.Container) any {
		builds.Add(1)
		return &struct{ N int }{N: 7}
	})

	assert.False(t, c.Resolved("thing"))

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Make("thing")
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
	assert.True(t, c.Resolved("thing"))
	assert.GreaterOrEqual(t, builds.Load(), int32(1))
}

func TestContainer_InstanceAndAlias(t *testing.T) {
	t.Parallel()

	c := container.New()
	v := &struct{}{}
	c.Instance("config", v)
	c.Alias("config", "configuration")

	got, ok := c.Lookup("configuration")
	require.True(t, ok)
	assert.Same(t, v, got)
	assert.True(t, c.Bound("configuration"))
	assert.Equal(t, []string{"configuration"}, c.Aliases("config"))
	assert.Equal(t, []string{"config", "container"}, c.Bindings())
}

func TestContainer_AliasToItselfPanics(t *testing.T) {
	assert.Panics(t, func() { container.New().Alias("x", "x") })
}

func TestContainer_MakeMissingPanics(t *testing.T) {
	c := container.New()
	assert.PanicsWithValue(t, "container: no binding registered for [nope]", func() { c.Make("nope") })

	_, ok := c.Lookup("nope")
	assert.False(t, ok)
	assert.False(t, c.Bound("nope"))
}

func TestResolve_WrongTypePanics(t *testing.T) {
	c := container.New()
	c.Instance("n", 1)
	assert.Panics(t, func() { container.Resolve[string](c, "n") })

	_, ok := container.TryResolve[string](c, "n")
	assert.False(t, ok)
	n, ok := container.TryResolve[int](c, "n")
	assert.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestTypeKey(t *testing.T) {
	assert.Equal(t,
		"github.com/km-arc/go-mvc/framework/internal/testbeans/service.Greeter",
		container.TypeKey((*service.Greeter)(nil)))
	assert.Equal(t,
		"github.com/km-arc/go-mvc/framework/internal/testbeans/service.GreeterImpl",
		container.TypeKey(&service.GreeterImpl{}))
}
