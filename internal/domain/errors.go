package domain

import "errors"

var (
	// ErrInvalidActivity is returned for activities with an unknown kind or annex
	ErrInvalidActivity = errors.New("invalid activity")

	// ErrNegativeAmount is returned when a money field in a request is below zero
	ErrNegativeAmount = errors.New("negative amount")

	// ErrInvalidBracketTable is returned when a bracket table breaks its ordering invariants
	ErrInvalidBracketTable = errors.New("invalid bracket table")

	// ErrUnknownFiscalYear is returned when no legal constants exist for a year
	ErrUnknownFiscalYear = errors.New("unknown fiscal year")
)
