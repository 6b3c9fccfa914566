package domain

import "errors"

var (
	// ErrNotFound covers both an absent row and an ownership mismatch on
	// mutations (the store cannot tell the two apart from a zero-row result).
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the authenticated caller does not own the website.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicate is returned by sign-up when the username is taken.
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidCredentials is returned by sign-in for an unknown username
	// or a failed password verification; callers must not distinguish.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
