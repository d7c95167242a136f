package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidActionType = errors.New("invalid action type")
	ErrEmptyData         = errors.New("action data is required")
	ErrMalformedData     = errors.New("action data is not valid for its type")
	ErrEmptyTitle        = errors.New("entry title is required")
	ErrInvalidEntryID    = errors.New("invalid entry ID")
	ErrEmptyTaskID       = errors.New("task ID is required")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
)
