package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrClassNotFound indicates that class was not found
	ErrClassNotFound = errors.New("class not found")

	// ErrSubjectNotFound indicates that subject was not found
	ErrSubjectNotFound = errors.New("subject not found")
)
