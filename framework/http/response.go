package http

import (
	"encoding/json"
	"io"
	"net/http"
)

// NotFoundBody is written when no route matches a request.
const NotFoundBody = "404 not found."

// Response wraps http.ResponseWriter with string and JSON helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// Write writes s as the response body.
func (res *Response) Write(s string) error {
	_, err := io.WriteString(res.w, s)
	return err
}

// Text sends s with an explicit status and a plain-text content type.
func (res *Response) Text(status int, s string) error {
	res.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.w.WriteHeader(status)
	return res.Write(s)
}

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) error {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	return json.NewEncoder(res.w).Encode(data)
}

// NotFound sends 404 with NotFoundBody.
func (res *Response) NotFound() error {
	return res.Text(http.StatusNotFound, NotFoundBody)
}
