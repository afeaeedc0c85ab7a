package errors

import "net/http"

var ErrTransactionRolledBack = &Exception{
	Kind:       KindTransactionRolledBack,
	Message:    "bulk update rolled back",
	StatusCode: http.StatusInternalServerError,
}
