package models

import "time"

// Reaction records that a user reacted to an entry. At most one reaction per
// (user, entry) pair exists, which makes the toggle naturally idempotent.
type Reaction struct {
	UserID    int64     `json:"-"`
	EntryID   int64     `json:"entry_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with Reaction.
func (r Reaction) TableName() string {
	return "reactions"
}
