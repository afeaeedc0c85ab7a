package errors

import "net/http"

var ErrPersistenceFailure = &Exception{
	Kind:       KindPersistenceFailure,
	Message:    "failed to persist task",
	StatusCode: http.StatusInternalServerError,
}
