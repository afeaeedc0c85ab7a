package errors

import "net/http"

var ErrInvalidTask = &Exception{
	Kind:       KindInvalidTask,
	Message:    "invalid task",
	StatusCode: http.StatusBadRequest,
}
