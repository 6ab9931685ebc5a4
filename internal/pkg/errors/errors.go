package errors

import "errors"

// Common application errors
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for invalid input data.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned for state conflicts (e.g. a result recorded twice
	// for the same session, or a mutation on a finished session).
	ErrConflict = errors.New("resource state conflict")
)

// Assessment engine errors
var (
	// ErrUnknownLevel is returned when a session is started with a level id
	// that is not configured. Configuration error, surfaced immediately.
	ErrUnknownLevel = errors.New("unknown quiz level")

	// ErrInsufficientQuestions is returned when a level catalog holds fewer
	// questions than the requested selection count. Configuration error.
	ErrInsufficientQuestions = errors.New("insufficient questions in catalog")

	// ErrEmptySession is returned when scoring is attempted on a session with
	// zero questions. Programmer error.
	ErrEmptySession = errors.New("cannot score empty session")

	// ErrInsufficientHistory is returned when ranking is requested for a user
	// with fewer results in the timeframe window than the minimum required.
	// Expected and recoverable: callers treat it as "not yet eligible".
	ErrInsufficientHistory = errors.New("insufficient result history for ranking")
)
