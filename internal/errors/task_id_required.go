package errors

import "net/http"

var ErrTaskIDRequired = &Exception{
	Kind:       KindTaskIDRequired,
	Message:    "task id is required",
	StatusCode: http.StatusBadRequest,
}
