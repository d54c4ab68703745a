// Package controller holds controller fixtures for the framework's tests.
package controller

import (
	"fmt"
	"net/http"
	"strconv"

	gohttp "github.com/km-arc/go-mvc/framework/http"
	"github.com/km-arc/go-mvc/framework/internal/testbeans/service"
	"github.com/km-arc/go-mvc/framework/mvc"
)

// GreetController exercises injection by type, by name, and via setter.
type GreetController struct {
	mvc.Controller `path:"/greet//"`

	Greeter service.Greeter `inject:""`
	counter service.Counter `inject:"counter"`

	Initialized bool
}

func (c *GreetController) SetCounter(counter service.Counter) { c.counter = counter }

// Counter exposes the setter-injected dependency.
func (c *GreetController) Counter() service.Counter { return c.counter }

func (c *GreetController) Initialize() error {
	c.Initialized = c.Greeter != nil
	return nil
}

func (c *GreetController) RequestMappings() []mvc.Mapping {
	return []mvc.Mapping{
		{Path: "/show", Handler: "Show", Params: []string{"name"}},
		{Path: "/count", Handler: "Count"},
	}
}

func (c *GreetController) Show(name string, w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, c.Greeter.Greet(name))
}

func (c *GreetController) Count(res *gohttp.Response) error {
	return res.Write(strconv.Itoa(c.counter.Next()))
}

// MathController binds integers and the request wrapper.
type MathController struct {
	mvc.Controller `path:"/math"`
}

func (c *MathController) RequestMappings() []mvc.Mapping {
	return []mvc.Mapping{
		{Path: "/square", Handler: "Square", Params: []string{"n", "", ""}},
	}
}

func (c *MathController) Square(n int, req *gohttp.Request, res *gohttp.Response) error {
	return res.Write(fmt.Sprintf("%s %d", req.LogicalPath(), n*n))
}

// Prototypes returns the controller fixtures.
func Prototypes() []any {
	return []any{
		(*GreetController)(nil),
		(*MathController)(nil),
	}
}
