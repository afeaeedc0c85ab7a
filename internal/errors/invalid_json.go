package errors

import "net/http"

var ErrInvalidJSON = &Exception{
	Kind:       KindInvalidJSON,
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}
