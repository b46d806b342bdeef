package store

import "errors"

// Code is a machine-readable failure class carried by every store error.
type Code string

const (
    CodeValidation    Code = "VALIDATION_ERROR"
    CodeNotFound      Code = "NOT_FOUND"
    CodeAlreadyExists Code = "ALREADY_EXISTS"
    CodeForbidden     Code = "FORBIDDEN"
    CodeInvalidConfig Code = "INVALID_CONFIG"
    CodeInternal      Code = "INTERNAL_ERROR"
)

// Error is the only error type that crosses the store boundary. Details holds
// the validator's itemized messages when the failure is validation-shaped.
type Error struct {
    Code    Code     `json:"code"`
    Message string   `json:"message"`
    Details []string `json:"details,omitempty"`
}

func (e *Error) Error() string {
    return string(e.Code) + ": " + e.Message
}

func newError(code Code, message string, details ...string) *Error {
    return &Error{Code: code, Message: message, Details: details}
}

// AsError unwraps err into a store Error when possible.
func AsError(err error) (*Error, bool) {
    var se *Error
    if errors.As(err, &se) {
        return se, true
    }
    return nil, false
}

// CodeOf reports the store code of err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
    if se, ok := AsError(err); ok {
        return se.Code
    }
    return CodeInternal
}
