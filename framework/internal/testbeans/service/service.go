// Package service holds service fixtures for the framework's tests.
package service

import (
	"errors"
	"sync"

	"github.com/km-arc/go-mvc/framework/mvc"
)

// Greeter greets people.
type Greeter interface {
	Greet(name string) string
}

// Counter hands out increasing numbers.
type Counter interface {
	Next() int
}

// GreeterImpl is registered under its derived name "greeterImpl".
type GreeterImpl struct {
	mvc.Service
}

func (g *GreeterImpl) Greet(name string) string { return "hello, " + name }

// CounterImpl is registered under the explicit name "counter".
type CounterImpl struct {
	mvc.Service `bean:"counter"`

	mu sync.Mutex
	n  int
}

func (c *CounterImpl) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n
}

// Broken never constructs.
type Broken struct {
	mvc.Service
}

// ErrBroken is returned by NewBroken.
var ErrBroken = errors.New("broken on purpose")

func NewBroken() (*Broken, error) { return nil, ErrBroken }

// Prototypes returns the healthy service fixtures.
func Prototypes() []any {
	return []any{
		(*Greeter)(nil),
		(*Counter)(nil),
		(*GreeterImpl)(nil),
		(*CounterImpl)(nil),
	}
}
