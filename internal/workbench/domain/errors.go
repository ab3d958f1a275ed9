package domain

import "errors"

var (
	ErrUnknownThickness  = errors.New("unknown nominal glass thickness")
	ErrDocumentParse     = errors.New("document parse error")
	ErrUnknownAttribute  = errors.New("attribute not in schema")
	ErrUnknownVariant    = errors.New("unknown variant")
	ErrInvalidOption     = errors.New("value is not an allowed option")
	ErrEntityNotFound    = errors.New("entity not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrIncompletePayload = errors.New("incomplete preview payload")
	ErrSessionNotFound   = errors.New("session not found")
	ErrRevisionNotFound  = errors.New("revision not found")
	ErrStaleResponse     = errors.New("stale preview response")
)
