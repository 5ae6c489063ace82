package services

import (
	"errors"
	"net/http"

	"github.com/lib/pq"
)

// Stable error kinds returned to API clients.
const (
	KindValidation            = "VALIDATION"
	KindForbidden             = "FORBIDDEN"
	KindNotFound              = "NOT_FOUND"
	KindDuplicateContribution = "DUPLICATE_CONTRIBUTION"
	KindNotReady              = "NOT_READY"
	KindAlreadyDrawn          = "ALREADY_DRAWN"
	KindGroupExhausted        = "GROUP_EXHAUSTED"
	KindInvalidState          = "INVALID_STATE"
)

// DomainError carries a stable kind alongside a human-readable message.
// NOT_READY errors additionally list the members that have not contributed.
type DomainError struct {
	Kind           string   `json:"kind"`
	Message        string   `json:"message"`
	MissingMembers []string `json:"missing_members,omitempty"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(kind, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// HTTPStatus maps an error kind to the status code the handlers return.
func (e *DomainError) HTTPStatus() int {
	switch e.Kind {
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyDrawn, KindDuplicateContribution:
		return http.StatusConflict
	case KindValidation, KindNotReady, KindGroupExhausted, KindInvalidState:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AsDomainError unwraps err into a *DomainError if it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var derr *DomainError
	if errors.As(err, &derr) {
		return derr, true
	}
	return nil, false
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// conflict (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
