// Package controller holds the demo's request handlers.
package controller

import (
	"fmt"
	"net/http"

	gohttp "github.com/km-arc/go-mvc/framework/http"
	"github.com/km-arc/go-mvc/framework/mvc"
	"github.com/km-arc/go-mvc/framework/scan"

	"github.com/km-arc/go-mvc/demo/service"
)

func init() {
	scan.Register((*UserController)(nil))
}

// UserController serves /user/*.
type UserController struct {
	mvc.Controller `path:"/user"`

	Users service.UserService `inject:"userService"`
}

func (c *UserController) RequestMappings() []mvc.Mapping {
	return []mvc.Mapping{
		{Path: "/show", Handler: "Show", Params: []string{"name"}},
		{Path: "/age", Handler: "Age", Params: []string{"name", "years"}},
	}
}

// Show handles /user/show?name=….
func (c *UserController) Show(name string, r *http.Request, w http.ResponseWriter) {
	_, _ = fmt.Fprintf(w, "%s (%s)", c.Users.Describe(name), r.Method)
}

// Age handles /user/age?name=…&years=N and reports how old the user will be.
func (c *UserController) Age(name string, years int, res *gohttp.Response) error {
	return res.JSON(http.StatusOK, map[string]any{
		"name": name,
		"age":  c.Users.Age(name) + years,
	})
}
