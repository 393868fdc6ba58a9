package entities

import "errors"

// Domain errors
var (
	// Transcript errors
	ErrTranscriptNotFound = errors.New("transcript not found")

	// Action item errors
	ErrActionItemNotFound = errors.New("action item not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrMissingAssignee    = errors.New("assignee is required")
	ErrMissingDescription = errors.New("description is required")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
)
