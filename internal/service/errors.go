package service

import "errors"

// Validation errors surfaced at the write boundary. Handlers map these
// to 400 problem responses.
var (
	ErrInvalidSeverity  = errors.New("severity must be between 1 (Mild) and 3 (Severe)")
	ErrInvalidMood      = errors.New("mood must be between 1 (Rough) and 4 (Great)")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrNotOwned         = errors.New("resource does not belong to the authenticated user")
	ErrDuplicateSymptom = errors.New("a symptom with this name already exists")
)
