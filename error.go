package lunchmenu

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Extraction error codes. Each one is a distinct, user-visible reason why a
// restaurant's menu could not be read.
const (
	// EFETCH means the source could not be downloaded or returned a non-OK status.
	EFETCH = "fetch_failed"

	// ETOOLARGE means the source exceeded the download size ceiling.
	ETOOLARGE = "too_large"

	// EUNSUPPORTED means the source kind cannot be parsed at all (images).
	EUNSUPPORTED = "unsupported"

	// ENOTEXT means the document has no usable text layer and needs OCR.
	ENOTEXT = "needs_ocr"

	// EEMPTY means the document was read but no meals survived extraction.
	EEMPTY = "empty"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("lunchmenu error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
