package usecase

import (
	"errors"

	"github.com/xavierca1/creator-deals/internal/entity"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeUnknownAction     = "UNKNOWN_ACTION"
	CodeConflict          = "CONFLICT"
	CodeDatabase          = "DATABASE_ERROR"
	CodeGeneration        = "GENERATION_FAILED"
	CodeMalformed         = "MALFORMED_RESPONSE"
	CodeDelivery          = "DELIVERY_FAILED"
)

// DomainError: a ação foi recusada localmente, antes de qualquer chamada externa.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError: falha de banco, IA ou email. O registro não foi alterado.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode devolve o código de um DomainError/TechnicalError, ou "".
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func validationError(msg string) error {
	return &DomainError{Code: CodeValidation, Message: "validation failed: " + msg}
}

func transitionError(err error) error {
	if errors.Is(err, entity.ErrUnknownAction) {
		return &DomainError{Code: CodeUnknownAction, Message: err.Error(), Err: err}
	}
	return &DomainError{Code: CodeInvalidTransition, Message: err.Error(), Err: err}
}

// loadError converte o erro de um FindByID.
func loadError(what string, err error) error {
	if errors.Is(err, entity.ErrNotFound) {
		return &DomainError{Code: CodeNotFound, Message: what + " not found", Err: err}
	}
	return dbError("failed to load "+what, err)
}

func dbError(msg string, err error) error {
	return &TechnicalError{Code: CodeDatabase, Message: msg + ": " + err.Error(), Err: err}
}

func generationError(err error) error {
	if errors.Is(err, entity.ErrMalformedResponse) {
		return &TechnicalError{Code: CodeMalformed, Message: "generation returned an incomplete document: " + err.Error(), Err: err}
	}
	return &TechnicalError{Code: CodeGeneration, Message: "generation failed: " + err.Error(), Err: err}
}
