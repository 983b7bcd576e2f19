package model

import "errors"

var (
	// ErrFieldNameRequired is returned when a field is added without a name.
	ErrFieldNameRequired = errors.New("model: field name is required")
	// ErrDuplicateField is returned when a name is already registered.
	ErrDuplicateField = errors.New("model: duplicate field name")
	// ErrUnknownKind is returned for kinds outside the closed enumeration.
	ErrUnknownKind = errors.New("model: unknown field kind")
)
