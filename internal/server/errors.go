package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/agenthands/protgraph/internal/core"
	"github.com/agenthands/protgraph/internal/core/extraction"
	"github.com/agenthands/protgraph/internal/source"
	"github.com/agenthands/protgraph/internal/uniprot"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrBodyTooLarge   = errors.New("request body too large")
)

// AppError carries the HTTP status a failure is reported with.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// MapError converts pipeline errors into an AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return NewAppError(http.StatusRequestEntityTooLarge, "Request body too large", err)
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, source.ErrUnsupportedSource):
		return NewAppError(http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, core.ErrProteinNotFound):
		return NewAppError(http.StatusNotFound, "Protein not found", err)
	case errors.Is(err, source.ErrFetch):
		return NewAppError(http.StatusBadGateway, "Failed to fetch source", err)
	case errors.Is(err, extraction.ErrMissingField),
		errors.Is(err, uniprot.ErrMalformedCardinality),
		errors.Is(err, uniprot.ErrNoEntry),
		errors.Is(err, uniprot.ErrMultipleEntries),
		errors.Is(err, source.ErrUnsupportedFormat),
		errors.Is(err, source.ErrInvalidDocument):
		return NewAppError(http.StatusUnprocessableEntity, "Invalid document", err)
	}

	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}
