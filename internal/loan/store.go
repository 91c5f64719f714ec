package loan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"loandesk/internal/common/database"
)

// SnapshotStore persists session aggregates. Save is best-effort from the
// caller's point of view; Load returns (nil, nil) when no snapshot exists.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID string, state *State) error
	Load(ctx context.Context, sessionID string) (*State, error)
}

// PostgresSnapshotStore keeps one JSON document per session, last write wins.
type PostgresSnapshotStore struct {
	db *database.PostgresClient
}

func NewPostgresSnapshotStore(db *database.PostgresClient) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

const saveSnapshotQuery = `
	INSERT INTO loan_sessions (session_id, state, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (session_id)
	DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()`

const loadSnapshotQuery = `SELECT state FROM loan_sessions WHERE session_id = $1`

func (s *PostgresSnapshotStore) Save(ctx context.Context, sessionID string, state *State) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if _, err := s.db.Exec(ctx, saveSnapshotQuery, sessionID, doc); err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}

func (s *PostgresSnapshotStore) Load(ctx context.Context, sessionID string) (*State, error) {
	var doc []byte
	err := s.db.QueryRow(ctx, loadSnapshotQuery, sessionID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}

	var state State
	if err := json.Unmarshal(doc, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return &state, nil
}
