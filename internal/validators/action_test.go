package validators

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daybook-sync/daybook/models"
)

func TestActionValidator_Validate(t *testing.T) {
	v := NewActionValidator()
	ctx := context.Background()

	action := func(actionType models.ActionType, payload any) models.OfflineAction {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		return models.OfflineAction{
			ID:        "a-1",
			Type:      actionType,
			Data:      data,
			Timestamp: time.Now(),
		}
	}

	tests := []struct {
		name    string
		obj     any
		fields  []string
		wantErr error
	}{
		{
			name: "valid entry create",
			obj:  action(models.ActionEntryCreate, models.EntryCreateData{Title: "hello"}),
		},
		{
			name:    "unknown action type",
			obj:     action("entry-explode", struct{}{}),
			wantErr: ErrInvalidActionType,
		},
		{
			name:    "entry create without title",
			obj:     action(models.ActionEntryCreate, models.EntryCreateData{Body: "no title"}),
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "reaction toggle with bad target",
			obj:     action(models.ActionReactionToggle, models.ReactionToggleData{TargetID: 0, Desired: true}),
			wantErr: ErrInvalidEntryID,
		},
		{
			name:    "task complete without task id",
			obj:     action(models.ActionTaskComplete, models.TaskCompleteData{Completed: true}),
			wantErr: ErrEmptyTaskID,
		},
		{
			name:    "update with no fields",
			obj:     action(models.ActionEntryUpdate, models.EntryUpdateData{EntryID: 7}),
			wantErr: ErrNoFieldsToUpdate,
		},
		{
			name: "valid delete",
			obj:  action(models.ActionEntryDelete, models.EntryDeleteData{EntryID: 7}),
		},
		{
			name: "malformed payload",
			obj: models.OfflineAction{
				ID:   "a-2",
				Type: models.ActionEntryCreate,
				Data: json.RawMessage(`{"title":`),
			},
			wantErr: ErrMalformedData,
		},
		{
			name: "empty payload",
			obj: models.OfflineAction{
				ID:   "a-3",
				Type: models.ActionEntryDelete,
			},
			wantErr: ErrEmptyData,
		},
		{
			name:    "type scope skips bad payload",
			obj:     action(models.ActionEntryCreate, models.EntryCreateData{}),
			fields:  []string{FieldType},
			wantErr: nil,
		},
		{
			name:    "unknown field name",
			obj:     action(models.ActionEntryCreate, models.EntryCreateData{Title: "x"}),
			fields:  []string{"hash"},
			wantErr: ErrUnknownField,
		},
		{
			name:    "unsupported object type",
			obj:     "not an action",
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "typed payload directly",
			obj:     models.TaskCompleteData{TaskID: "water-plants", Completed: true},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj, tt.fields...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
