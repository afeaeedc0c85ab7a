package errors

import "net/http"

var ErrEmptyBatch = &Exception{
	Kind:       KindEmptyBatch,
	Message:    "nothing to update",
	StatusCode: http.StatusBadRequest,
}
