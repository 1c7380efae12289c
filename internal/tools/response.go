package tools

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a terminal response produced by a tool handler or by the
// pipeline on its behalf.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// JSON builds a 200 response with a JSON body. An encoding failure is
// mapped to a 500 so the handler contract stays single-return.
func JSON(v any) *Response {
	body, err := json.Marshal(v)
	if err != nil {
		return Error(fmt.Sprintf("failed to encode response: %v", err))
	}
	return &Response{
		Status:      http.StatusOK,
		ContentType: "application/json",
		Body:        body,
	}
}

// Text builds a 200 response with a plain-text body.
func Text(s string) *Response {
	return &Response{
		Status:      http.StatusOK,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(s),
	}
}

// BadRequest builds a 400 response with a plain-text reason.
func BadRequest(format string, args ...any) *Response {
	return &Response{
		Status:      http.StatusBadRequest,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(fmt.Sprintf(format, args...)),
	}
}

// Unauthorized builds a 401 response with an empty body. The pipeline
// never produces this on its own; it is a choice a handler may make.
func Unauthorized() *Response {
	return &Response{Status: http.StatusUnauthorized}
}

// Error builds a 500 response with a plain-text message.
func Error(msg string) *Response {
	return &Response{
		Status:      http.StatusInternalServerError,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(msg),
	}
}

// Write writes the response to w.
func (r *Response) Write(w http.ResponseWriter) {
	if r.ContentType != "" {
		w.Header().Set("Content-Type", r.ContentType)
	}
	w.WriteHeader(r.Status)
	if len(r.Body) > 0 {
		w.Write(r.Body)
	}
}
