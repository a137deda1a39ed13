package reservation

import (
	"errors"
	"fmt"
)

// Error codes surfaced to the handler layer.
const (
	CodeSlotUnavailable = "slotUnavailable"
	CodeNotFound        = "notFound"
	CodeValidation      = "validation"
	CodeConflict        = "conflict"
)

type ReservationError struct {
	Code    string
	Message string
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSlotUnavailableError() error {
	return &ReservationError{Code: CodeSlotUnavailable, Message: "slot not available"}
}

func NewNotFoundError(msg string) error {
	return &ReservationError{Code: CodeNotFound, Message: msg}
}

func NewValidationError(msg string) error {
	return &ReservationError{Code: CodeValidation, Message: msg}
}

func NewConflictError(msg string) error {
	return &ReservationError{Code: CodeConflict, Message: msg}
}

// HasCode reports whether err is a ReservationError carrying the given code.
func HasCode(err error, code string) bool {
	var re *ReservationError
	return errors.As(err, &re) && re.Code == code
}
