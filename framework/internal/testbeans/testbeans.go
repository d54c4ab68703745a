// Package testbeans assembles a small bean universe for the framework's
// tests:
//
//	testbeans              Clock (plain)
//	testbeans/controller   GreetController, MathController
//	testbeans/service      Counter, Greeter, CounterImpl, GreeterImpl
package testbeans

import (
	"reflect"

	"github.com/km-arc/go-mvc/framework/internal/testbeans/controller"
	"github.com/km-arc/go-mvc/framework/internal/testbeans/service"
	"github.com/km-arc/go-mvc/framework/scan"
)

// Clock carries no stereotype and is never instantiated.
type Clock struct{}

// Root is the namespace the fixtures live under.
var Root = reflect.TypeOf(Clock{}).PkgPath()

// Catalog returns a fresh catalog holding every fixture.
func Catalog() *scan.Catalog {
	cat := scan.NewCatalog()
	protos := []any{(*Clock)(nil)}
	protos = append(protos, controller.Prototypes()...)
	protos = append(protos, service.Prototypes()...)
	if err := cat.Add(protos...); err != nil {
		panic(err)
	}
	return cat
}
