// Package apperrors define a taxonomia de erros da API e o status HTTP de cada tipo.
package apperrors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifica o erro para a camada HTTP.
type Kind string

const (
	KindValidation  Kind = "VALIDATION_ERROR"
	KindNotFound    Kind = "NOT_FOUND"
	KindConflict    Kind = "CONFLICT"
	KindAuth        Kind = "UNAUTHORIZED"
	KindPersistence Kind = "DATABASE_ERROR"
)

// Error é o erro devolvido pelos handlers e repositórios.
type Error struct {
	Kind    Kind
	Message string
	// Fields traz, em erros de validação, campo -> regra violada.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status converte o tipo em status HTTP.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// ValidationFields cria um erro de validação com o detalhe por campo.
func ValidationFields(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

func Persistence(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: err}
}

// FromDB traduz erros do gorm. O unique do banco cobre a corrida entre
// a checagem e a escrita.
func FromDB(msg string, err error) *Error {
	var appErr *Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(msg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Message: msg, Err: err}
	default:
		return Persistence(msg, err)
	}
}

// Status devolve o status HTTP de qualquer erro; erros desconhecidos viram 500.
func Status(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status()
	}
	return http.StatusInternalServerError
}

// As extrai o *Error, embrulhando erros desconhecidos como falha de persistência.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Persistence("Internal server error", err)
}
