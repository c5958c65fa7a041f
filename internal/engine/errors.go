package engine

import (
	"fmt"

	"volunteer-backend/internal/metadata"
)

// AppError is an anticipated request failure. It serializes to the flat
// envelope callers branch on: {"error": <message>, "code": <code>}.
// Code is part of the contract; Message is for humans.
type AppError struct {
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code string, status int, msg string) *AppError {
	return &AppError{Code: code, Status: status, Message: msg}
}

// InvalidIDError covers a missing or non-numeric identity parameter.
func InvalidIDError() *AppError {
	return &AppError{Code: "INVALID_ID", Status: 400, Message: "Valid ID is required"}
}

// NotFoundError uses the entity's declared not-found code and message.
func NotFoundError(entity *metadata.Entity) *AppError {
	code := entity.NotFoundCode
	if code == "" {
		code = "NOT_FOUND"
	}
	msg := entity.NotFoundMessage
	if msg == "" {
		msg = fmt.Sprintf("%s not found", entity.Singular)
	}
	return &AppError{Code: code, Status: 404, Message: msg}
}

func UnknownEntityError(name string) *AppError {
	return &AppError{
		Code:    "UNKNOWN_ENTITY",
		Status:  404,
		Message: fmt.Sprintf("Unknown entity: %s", name),
	}
}

// InternalError wraps an unexpected failure: 500, message text only,
// no stable code and never a stack trace.
func InternalError(err error) *AppError {
	return &AppError{
		Status:  500,
		Message: "Internal server error: " + err.Error(),
	}
}
