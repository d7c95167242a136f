package store

const (
	createUser = `INSERT INTO users (login, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, name, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, created_at
    FROM users
    WHERE login = $1;`

	createEntry = `INSERT INTO entries (user_id, title, body, dedup_key, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $5)
    RETURNING id, created_at, updated_at;`

	findEntryByDedupKey = `SELECT id, user_id, title, body, COALESCE(dedup_key, ''), deleted, created_at, updated_at
    FROM entries
    WHERE user_id = $1 AND dedup_key = $2;`

	getEntry = `SELECT id, user_id, title, body, COALESCE(dedup_key, ''), deleted, created_at, updated_at
    FROM entries
    WHERE id = $1;`

	softDeleteEntry = `UPDATE entries
    SET deleted = TRUE, updated_at = NOW()
    WHERE id = $1 AND user_id = $2 AND NOT deleted;`

	addReaction = `INSERT INTO reactions (user_id, entry_id, created_at)
    VALUES ($1, $2, NOW())
    ON CONFLICT (user_id, entry_id) DO NOTHING;`

	removeReaction = `DELETE FROM reactions
    WHERE user_id = $1 AND entry_id = $2;`

	lastReactionAt = `SELECT MAX(created_at) FROM reactions WHERE user_id = $1;`

	upsertTaskCompletion = `INSERT INTO task_completions (user_id, task_id, completed, completed_at, updated_at)
    VALUES ($1, $2, $3, CASE WHEN $3 THEN NOW() END, NOW())
    ON CONFLICT (user_id, task_id) DO UPDATE
    SET completed     = EXCLUDED.completed,
        completed_at  = CASE
            WHEN EXCLUDED.completed AND NOT task_completions.completed THEN NOW()
            WHEN EXCLUDED.completed THEN task_completions.completed_at
        END,
        updated_at    = NOW();`

	lastCompletionAt = `SELECT MAX(updated_at) FROM task_completions WHERE user_id = $1;`

	lastEntryUpdatedAt = `SELECT MAX(updated_at) FROM entries WHERE user_id = $1;`
)
