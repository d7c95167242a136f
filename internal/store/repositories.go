package store

import (
	"database/sql"

	"github.com/daybook-sync/daybook/internal/logger"
)

// Repositories is the container handed to the service layer. The zero-value
// fields are interfaces so tests can substitute fakes per repository.
type Repositories struct {
	Users     UserRepository
	Entries   EntryRepository
	Reactions ReactionRepository
	Tasks     TaskRepository

	db  *DB
	log *logger.Logger
}

// NewRepositories wires every repository to the shared database connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db, log),
		Entries:   NewEntryRepository(db, log),
		Reactions: NewReactionRepository(db, log),
		Tasks:     NewTaskRepository(db, log),
		db:        db,
		log:       log,
	}
}

// DB exposes the underlying connection for transaction management and
// migrations.
func (r *Repositories) DB() *DB {
	return r.db
}

// WithTx returns a Repositories view whose members run all statements on tx.
// The reconciliation engine uses it to scope one batch to one transaction.
func (r *Repositories) WithTx(tx *sql.Tx) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(tx, r.log),
		Entries:   NewEntryRepository(tx, r.log),
		Reactions: NewReactionRepository(tx, r.log),
		Tasks:     NewTaskRepository(tx, r.log),
		db:        r.db,
		log:       r.log,
	}
}
