// Package common defines shared constants and sentinel errors used across
// the engine. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Inventory-level errors.
	ErrNotFound    = errors.New("asset not found")
	ErrDuplicateID = errors.New("asset id already exists")

	// Validation errors. The concrete error value carries the full list
	// of findings and wraps this sentinel.
	ErrValidation = errors.New("validation failed")

	// Version store errors.
	ErrVersionNotFound = errors.New("version not found")
)
