package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-mvc/framework/container"
	"github.com/km-arc/go-mvc/framework/routing"
	"github.com/km-arc/go-mvc/framework/scan"

	"github.com/km-arc/go-mvc/demo/controller"
	"github.com/km-arc/go-mvc/demo/service"
)

func dispatcher(t *testing.T) (*routing.Dispatcher, *container.Container) {
	t.Helper()
	names, err := scan.Default.Scan("github.com/km-arc/go-mvc/demo")
	require.NoError(t, err)

	c := container.New()
	require.NoError(t, c.RegisterBeans(scan.Default, names))
	require.NoError(t, c.Inject())

	tbl, err := routing.Build(c.Beans(), nil)
	require.NoError(t, err)
	return routing.NewDispatcher(tbl, "", nil), c
}

func TestUserController_Wiring(t *testing.T) {
	_, c := dispatcher(t)

	uc := container.Resolve[*controller.UserController](c, "userController")
	assert.Same(t, c.Make("userService"), uc.Users)
	assert.Same(t, c.Make(container.TypeKey((*service.UserService)(nil))), uc.Users)
}

func TestUserController_Show(t *testing.T) {
	d, _ := dispatcher(t)

	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/user/show?name=alice", nil))
	assert.Equal(t, "user alice, 31 years old (POST)", rec.Body.String())

	rec = httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/show", nil))
	assert.Equal(t, "anonymous user (GET)", rec.Body.String())
}

func TestUserController_Age(t *testing.T) {
	d, _ := dispatcher(t)

	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/age?name=bob&years=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "bob", body["name"])
	assert.Equal(t, float64(30), body["age"])

	rec = httptest.NewRecorder()
	err := d.Dispatch(rec, httptest.NewRequest(http.MethodGet, "/user/age?name=bob&years=soon", nil))
	assert.ErrorIs(t, err, routing.ErrBadParam)
	assert.Empty(t, rec.Body.String())
}
