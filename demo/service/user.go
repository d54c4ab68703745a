// Package service holds the demo's business services.
package service

import (
	"fmt"
	"strings"

	"github.com/km-arc/go-mvc/framework/mvc"
	"github.com/km-arc/go-mvc/framework/scan"
)

func init() {
	scan.Register((*UserService)(nil), NewUserServiceImpl)
}

// UserService looks up users.
type UserService interface {
	Describe(name string) string
	Age(name string) int
}

// UserServiceImpl keeps a fixed in-memory directory.
type UserServiceImpl struct {
	mvc.Service `bean:"userService"`

	ages map[string]int
}

func NewUserServiceImpl() *UserServiceImpl {
	return &UserServiceImpl{ages: map[string]int{
		"alice": 31,
		"bob":   27,
	}}
}

func (s *UserServiceImpl) Describe(name string) string {
	if name == "" {
		return "anonymous user"
	}
	if age, ok := s.ages[strings.ToLower(name)]; ok {
		return fmt.Sprintf("user %s, %d years old", name, age)
	}
	return "user " + name
}

func (s *UserServiceImpl) Age(name string) int {
	return s.ages[strings.ToLower(name)]
}
