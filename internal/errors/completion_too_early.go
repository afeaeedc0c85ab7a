package errors

import "net/http"

var ErrCompletionTooEarly = &Exception{
	Kind:       KindCompletionTooEarly,
	Message:    "task cannot be completed while it is due more than 3 days ahead",
	StatusCode: http.StatusUnprocessableEntity,
}
