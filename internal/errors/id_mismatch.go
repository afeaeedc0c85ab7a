package errors

import "net/http"

var ErrIDMismatch = &Exception{
	Kind:       KindIDMismatch,
	Message:    "task id in path does not match task id in body",
	StatusCode: http.StatusBadRequest,
}
