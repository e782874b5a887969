package domain

import "errors"

var (
	// ErrPropertyNotFound signals a well-formed id with no matching property.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrInvalidID signals an id that is not a valid store primary-key token.
	// Raised before any store access; distinct from not-found.
	ErrInvalidID = errors.New("invalid property id")
)
