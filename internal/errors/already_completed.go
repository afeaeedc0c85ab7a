package errors

import "net/http"

var ErrAlreadyCompleted = &Exception{
	Kind:       KindAlreadyCompleted,
	Message:    "task is already completed and cannot be changed",
	StatusCode: http.StatusUnprocessableEntity,
}
