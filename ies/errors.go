package ies

import "errors"

// Sentinel errors for IES operations. Use errors.Is in callers.
var (
	// ErrInvalidFormat means the header, column, or row region is malformed
	// or its size fields don't match the stated counts.
	ErrInvalidFormat = errors.New("ies: invalid or malformed file")
	// ErrFieldNotFound means a row accessor referenced a column absent from the row.
	ErrFieldNotFound = errors.New("ies: field not found")
	// ErrTypeMismatch means a row accessor was called with the wrong value kind.
	ErrTypeMismatch = errors.New("ies: type mismatch")
)
