package roerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeAssetNotFound  = "ASSET_NOT_FOUND"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidRequest is returned when a request is invalid.
	ErrInvalidRequest = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an unexpected error occurred.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "an unexpected error occurred")

	// ErrAssetNotFound is returned when neither the requested asset nor the
	// not-found placeholder exists in the local cache.
	ErrAssetNotFound = New(fiber.StatusNotFound, CodeAssetNotFound, "image not found and fallback image is missing")
)

type Extras map[string]interface{}

type MidgardError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *MidgardError {
	return &MidgardError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e MidgardError) WithMessage(format string, parts ...interface{}) *MidgardError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e MidgardError) WithExtras(extras Extras) *MidgardError {
	e.Extras = &extras
	return &e
}

func (e *MidgardError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
