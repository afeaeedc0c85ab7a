package errors

import "net/http"

var ErrDuplicateID = &Exception{
	Kind:       KindDuplicateID,
	Message:    "task already exists",
	StatusCode: http.StatusConflict,
}
