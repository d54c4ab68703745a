// Package mvc declares the metadata a struct carries to take part in the
// framework: stereotype markers, request mappings and the injection tag.
//
// Go has no runtime annotations, so the stereotypes are zero-size marker
// structs embedded into the bean, and their options ride on struct tags:
//
//	type GreetController struct {
//	    mvc.Controller `path:"/greet"`
//
//	    Greeter service.Greeter `inject:""`          // by type name
//	    Audit   *audit.Log      `inject:"auditLog"`  // by bean name
//	}
//
//	func (c *GreetController) RequestMappings() []mvc.Mapping {
//	    return []mvc.Mapping{
//	        {Path: "/show", Handler: "Show", Params: []string{"name"}},
//	    }
//	}
//
//	func (c *GreetController) Show(name string, w http.ResponseWriter) {
//	    _, _ = io.WriteString(w, c.Greeter.Greet(name))
//	}
package mvc
