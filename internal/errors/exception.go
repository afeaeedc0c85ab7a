package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound              Kind = "NotFound"
	KindDuplicateID           Kind = "DuplicateId"
	KindAlreadyCompleted      Kind = "AlreadyCompleted"
	KindCompletionTooEarly    Kind = "CompletionTooEarly"
	KindEmptyBatch            Kind = "EmptyBatch"
	KindPersistenceFailure    Kind = "PersistenceFailure"
	KindTransactionRolledBack Kind = "TransactionRolledBack"
	KindCacheFailure          Kind = "CacheFailure"
	KindInvalidTask           Kind = "InvalidTask"
	KindInvalidJSON           Kind = "InvalidJSON"
	KindTaskIDRequired        Kind = "TaskIDRequired"
	KindIDMismatch            Kind = "IDMismatch"
	KindRateLimited           Kind = "RateLimited"
	KindInternal              Kind = "Internal"
)

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *Exception) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

// Is matches any Exception of the same kind, so wrapped or reworded copies
// still compare equal to their sentinel.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	return ok && t.Kind == e.Kind
}

// Wrap returns a copy of e carrying err as its cause.
func (e *Exception) Wrap(err error) *Exception {
	c := *e
	c.Err = err
	return &c
}

// Withf returns a copy of e with a formatted message.
func (e *Exception) Withf(format string, args ...any) *Exception {
	c := *e
	c.Message = fmt.Sprintf(format, args...)
	return &c
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the client-safe message of err, without the wrapped cause.
func Message(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}
