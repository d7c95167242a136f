package models

import "time"

// TaskCompletion is the per-user completion record of a daily task. The row
// is upserted to match the desired boolean end-state: marking an already
// complete task complete again is a silent success.
type TaskCompletion struct {
	UserID int64 `json:"-"`

	// TaskID is the client-facing identifier of the daily task.
	TaskID string `json:"task_id"`

	// Completed is the current end-state.
	Completed bool `json:"completed"`

	// CompletedAt is stamped when Completed flips to true and cleared when
	// it flips back to false.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with
// TaskCompletion.
func (t TaskCompletion) TableName() string {
	return "task_completions"
}
