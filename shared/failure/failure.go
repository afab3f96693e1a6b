package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure independently of the HTTP status it maps to.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindInvalidDateRange   Kind = "InvalidDateRange"
	KindRoomUnavailable    Kind = "RoomUnavailable"
	KindInvalidTransition  Kind = "InvalidTransition"
	KindNotFound           Kind = "NotFound"
	KindStorageUnavailable Kind = "StorageUnavailable"
	KindConflict           Kind = "Conflict"
	KindInternal           Kind = "Internal"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid limit parameter"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// Is reports whether target is a Failure of the same kind, so errors.Is works against the sentinels below.
func (e *Failure) Is(target error) bool {
	var fail *Failure
	if !errors.As(target, &fail) {
		return false
	}

	return fail.Kind != "" && fail.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation         = &Failure{Kind: KindValidation}
	ErrInvalidDateRange   = &Failure{Kind: KindInvalidDateRange}
	ErrRoomUnavailable    = &Failure{Kind: KindRoomUnavailable}
	ErrInvalidTransition  = &Failure{Kind: KindInvalidTransition}
	ErrNotFound           = &Failure{Kind: KindNotFound}
	ErrStorageUnavailable = &Failure{Kind: KindStorageUnavailable}
	ErrConflict           = &Failure{Kind: KindConflict}
)

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindValidation,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
	}
}

// InvalidDateRange reports a check-in/check-out pair that is unparseable or not strictly increasing.
func InvalidDateRange(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidDateRange,
		Message: msg,
	}
}

// RoomUnavailable reports an overlap with an active booking.
func RoomUnavailable(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindRoomUnavailable,
		Message: msg,
	}
}

// InvalidTransition reports a status change the state machine does not allow.
func InvalidTransition(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindInvalidTransition,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Kind:    KindInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// StorageUnavailable returns a new Failure for an unreadable or unwritable record store.
func StorageUnavailable(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusServiceUnavailable,
			Kind:    KindStorageUnavailable,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// KindOf returns the kind of a Failure anywhere in the chain, or KindInternal.
func KindOf(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindInternal
}
