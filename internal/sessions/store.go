package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"assessment-workers/internal/common/database"
	"assessment-workers/internal/common/errors"
)

const keyPrefix = "assessment:session:"

// Store persists sessions in Redis. Every write refreshes the TTL, so a
// session expires only after a full period of inactivity.
type Store struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewStore(client *database.RedisClient, ttl time.Duration) *Store {
	return &Store{redis: client, ttl: ttl}
}

// Save serializes and writes the session, refreshing its TTL.
func (s *Store) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return errors.NewSessionStoreFailedError(fmt.Errorf("marshal session %s: %w", session.ID, err))
	}
	if err := s.redis.Set(ctx, keyPrefix+session.ID, data, s.ttl); err != nil {
		return errors.NewSessionStoreFailedError(fmt.Errorf("write session %s: %w", session.ID, err))
	}
	return nil
}

// Get loads a session by ID. A missing or expired session returns
// SESSION_NOT_FOUND.
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.redis.Get(ctx, keyPrefix+sessionID)
	if err == redis.Nil {
		return nil, errors.NewSessionNotFoundError(sessionID)
	}
	if err != nil {
		return nil, errors.NewSessionStoreFailedError(fmt.Errorf("read session %s: %w", sessionID, err))
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, errors.NewSessionStoreFailedError(fmt.Errorf("decode session %s: %w", sessionID, err))
	}
	return &session, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, keyPrefix+sessionID); err != nil {
		return errors.NewSessionStoreFailedError(fmt.Errorf("delete session %s: %w", sessionID, err))
	}
	return nil
}
