package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

// Коды соответствуют исходам жизненного цикла: невалидный ввод, нет прав,
// недопустимый переход состояния, нарушение уникальности, сущность не найдена.
const (
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeState        ErrorCode = "STATE_ERROR"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// AppError типизированная ошибка движка с HTTP статусом для веб-слоя.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation ошибка валидации входных данных.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// Forbidden у актора нет прав на сущность.
func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message)
}

// State сущность не в том состоянии, чтобы выполнить переход.
func State(message string) *AppError {
	return New(ErrCodeState, message)
}

// Conflict нарушен инвариант уникальности.
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message)
}

// NotFound сущность с указанным идентификатором не существует.
func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeState:
		return http.StatusUnprocessableEntity
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeForbidden
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsState(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeState
}

func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeConflict
}

var (
	ErrUnauthorized = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden    = New(ErrCodeForbidden, "недостаточно прав")
)
