package entities

import "errors"

// Domain errors
var (
	// Meeting errors
	ErrMeetingNotFound = errors.New("meeting not found")

	// Action item errors
	ErrActionItemNotFound = errors.New("action item not found")

	// OAuth errors
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
	ErrOAuthCodeInvalid   = errors.New("oauth code invalid")
	ErrTokenNotFound      = errors.New("oauth token not found")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
)
