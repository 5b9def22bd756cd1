package services

import "errors"

// Error taxonomy of the gateway. Every rejected precondition and every
// downstream failure surfaces as one of these (possibly wrapped); there is no
// silent failure path.
var (
	// Deposit preconditions; recoverable by the caller with corrected
	// input or state.
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrTokenNotSupported  = errors.New("token not supported")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrInsufficientFee    = errors.New("insufficient fee")
	ErrPaused             = errors.New("gateway paused")
	ErrReentrancy         = errors.New("reentrant call")

	// Administrative misuse; not retryable without a different caller
	// or value.
	ErrUnauthorized = errors.New("unauthorized")
	ErrZeroAddress  = errors.New("zero address")
)
