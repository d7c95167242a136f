package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired = errors.New("token is expired")

	ErrUnknownActionType   = errors.New("unknown action type")
	ErrMalformedActionData = errors.New("malformed action data")
	ErrActionPanicked      = errors.New("action handler panicked")

	ErrBatchNotApplied = errors.New("batch could not be applied")

	ErrSyncInFlight = errors.New("sync already in flight")
)
