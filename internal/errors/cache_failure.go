package errors

import "net/http"

// ErrCacheFailure is returned when a write committed but the cached copy of
// the task could not be evicted.
var ErrCacheFailure = &Exception{
	Kind:       KindCacheFailure,
	Message:    "task saved but cache invalidation failed",
	StatusCode: http.StatusInternalServerError,
}
