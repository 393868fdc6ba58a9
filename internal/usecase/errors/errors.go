package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("resource conflict")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Processing pipeline errors
var (
	ErrQueueFull         = errors.New("processing queue is full")
	ErrWorkersNotRunning = errors.New("worker pool is not running")
	ErrWorkersRunning    = errors.New("worker pool is already running")
	ErrLockUnavailable   = errors.New("transcript is being processed by another run")
)
