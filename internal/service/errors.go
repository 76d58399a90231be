package service

import "errors"

// Common service errors
var (
	// ErrClientNotFound is returned when a client is not found
	ErrClientNotFound = errors.New("client not found")

	// ErrCallNotFound is returned when a call is not found
	ErrCallNotFound = errors.New("call not found")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrNotificationNotFound is returned when a notification is missing or owned by someone else
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrEmailTaken is returned on registration with an email already in use
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials is returned when login email or password is wrong
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserContextRequired is returned when an operation needs an authenticated user
	ErrUserContextRequired = errors.New("user context required")

	// ErrNoImportData is returned when an import request carries no rows
	ErrNoImportData = errors.New("no data provided for import")

	// ErrInvalidDate is returned when a date field cannot be parsed
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
