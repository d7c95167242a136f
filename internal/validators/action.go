// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/daybook-sync/daybook/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldType targets the action type field.
	FieldType = "type"

	// FieldData targets the serialized action payload.
	FieldData = "data"
)

// ActionValidator implements the Validator interface for offline actions
// and their typed payloads. It rejects actions that would be recorded into
// the durable queue only to fail deterministically on the server: unknown
// types, undecodable payloads, and payloads missing required fields.
type ActionValidator struct {
}

// NewActionValidator constructs a new ActionValidator
// and returns it as the Validator interface.
func NewActionValidator() Validator {
	return &ActionValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
func (v *ActionValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.OfflineAction:
		return v.validateAction(value, fields...)
	case *models.OfflineAction:
		return v.validateAction(*value, fields...)
	case models.EntryCreateData:
		return v.validateEntryCreate(value)
	case models.ReactionToggleData:
		return v.validateReactionToggle(value)
	case models.TaskCompleteData:
		return v.validateTaskComplete(value)
	case models.EntryUpdateData:
		return v.validateEntryUpdate(value)
	case models.EntryDeleteData:
		return v.validateEntryDelete(value)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *ActionValidator) validateAction(action models.OfflineAction, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldData}
	}

	for _, field := range fields {
		switch field {
		case FieldType:
			if !action.Type.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidActionType, action.Type)
			}
		case FieldData:
			if err := v.validateData(action); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

// validateData decodes the raw payload into its typed form and applies the
// type-specific rules. An action with an unknown type is skipped here; the
// type field check owns that failure.
func (v *ActionValidator) validateData(action models.OfflineAction) error {
	if len(action.Data) == 0 {
		return ErrEmptyData
	}

	decode := func(dst any) error {
		if err := json.Unmarshal(action.Data, dst); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedData, err)
		}
		return nil
	}

	switch action.Type {
	case models.ActionEntryCreate:
		var data models.EntryCreateData
		if err := decode(&data); err != nil {
			return err
		}
		return v.validateEntryCreate(data)
	case models.ActionReactionToggle:
		var data models.ReactionToggleData
		if err := decode(&data); err != nil {
			return err
		}
		return v.validateReactionToggle(data)
	case models.ActionTaskComplete:
		var data models.TaskCompleteData
		if err := decode(&data); err != nil {
			return err
		}
		return v.validateTaskComplete(data)
	case models.ActionEntryUpdate:
		var data models.EntryUpdateData
		if err := decode(&data); err != nil {
			return err
		}
		return v.validateEntryUpdate(data)
	case models.ActionEntryDelete:
		var data models.EntryDeleteData
		if err := decode(&data); err != nil {
			return err
		}
		return v.validateEntryDelete(data)
	}

	return nil
}

func (v *ActionValidator) validateEntryCreate(data models.EntryCreateData) error {
	if data.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

func (v *ActionValidator) validateReactionToggle(data models.ReactionToggleData) error {
	if data.TargetID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidEntryID, data.TargetID)
	}
	return nil
}

func (v *ActionValidator) validateTaskComplete(data models.TaskCompleteData) error {
	if data.TaskID == "" {
		return ErrEmptyTaskID
	}
	return nil
}

func (v *ActionValidator) validateEntryUpdate(data models.EntryUpdateData) error {
	if data.EntryID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidEntryID, data.EntryID)
	}
	if data.Title == nil && data.Body == nil {
		return ErrNoFieldsToUpdate
	}
	return nil
}

func (v *ActionValidator) validateEntryDelete(data models.EntryDeleteData) error {
	if data.EntryID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidEntryID, data.EntryID)
	}
	return nil
}
