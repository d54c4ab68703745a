// Package http provides the request and response abstractions handler
// methods may declare instead of the raw net/http types.
//
// # Request
//
//	req := gohttp.NewRequest(r, "/app")
//
//	req.Path()          // "/app//user/show"
//	req.LogicalPath()   // "/user/show"
//	req.Param("name")   // query string + form body, multi-values joined by ", ", brackets removed
//	req.Has("name")
//	params, err := req.Params()
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Write("hello")              // plain body
//	res.Text(201, "created")        // status + text/plain
//	res.JSON(200, data)             // status + application/json
//	res.NotFound()                  // 404 "404 not found."
package http
