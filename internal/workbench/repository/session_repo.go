package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "facade:session:"  // Snapshot of one session: facade:session:{session_id}
	sessionIndexKey  = "facade:sessions"  // Set of session IDs with a snapshot
	sessionTTL       = 7 * 24 * time.Hour // TTL for session snapshots (7 days)
)

// Snapshot is the persisted state of an editing session. The project is
// stored as document text so restoring goes through the importer.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Document  string    `json:"document"`
	Version   uint64    `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionRepository keeps session snapshots in Redis.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Save writes the snapshot and refreshes its TTL.
func (r *SessionRepository) Save(ctx context.Context, snap *Snapshot) error {
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.sessionKey(snap.SessionID), data, sessionTTL)
	pipe.SAdd(ctx, sessionIndexKey, snap.SessionID)
	pipe.Expire(ctx, sessionIndexKey, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}

// Get loads a snapshot, returning ErrSessionNotFound when it expired or
// never existed.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	data, err := r.client.Get(ctx, r.sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes a snapshot.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.sessionKey(sessionID))
	pipe.SRem(ctx, sessionIndexKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}
	return nil
}

// List returns the IDs of sessions that still have a snapshot. Index
// entries whose snapshot expired are pruned.
func (r *SessionRepository) List(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Exists(ctx, r.sessionKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to check sessions: %w", err)
	}

	live := make([]string, 0, len(ids))
	var stale []any
	for i, id := range ids {
		if cmds[i].Val() > 0 {
			live = append(live, id)
		} else {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := r.client.SRem(ctx, sessionIndexKey, stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune sessions: %w", err)
		}
	}
	return live, nil
}

func (r *SessionRepository) sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
