package store

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")

	// ErrDuplicateVote is returned when a user votes twice on one argument.
	// The enforcing constraint is unique (user_id, argument_id); nothing is
	// mutated when this fires.
	ErrDuplicateVote = errors.New("duplicate vote")
)
