// Package domain defines the core entities of the vocabulary validation
// service: curriculum positions, vocabulary and content types, difficulty
// tiers, and exercise variants.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrNotLoaded is returned when an entry point is invoked before the
	// first curriculum snapshot has been loaded.
	ErrNotLoaded = errors.New("curriculum not loaded")

	// ErrInvalidExport is returned when a curriculum export payload cannot
	// be decoded into the expected shape.
	ErrInvalidExport = errors.New("invalid curriculum export")

	// ErrUnknownExerciseType is returned when an exercise payload carries a
	// type outside the closed enumeration.
	ErrUnknownExerciseType = errors.New("unknown exercise type")
)
