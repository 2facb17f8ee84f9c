// internal/workers/assessment/update-rating/handler_test.go
package updaterating

import (
	"context"
	"testing"
	"time"

	"assessment-workers/internal/catalog"
	"assessment-workers/internal/common/database"
	stderrors "assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/sessions"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func newTestHandler(t *testing.T) (*Handler, *sessions.Store) {
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	store := sessions.NewStore(client, time.Hour)
	return NewHandler(LoadConfig(), catalog.Default(), store, newTestLogger(t)), store
}

func seedSession(t *testing.T, store *sessions.Store, id string) *sessions.Session {
	t.Helper()
	session, err := sessions.New(id, catalog.ContextPreClose, catalog.Default())
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), session))
	return session
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_UpdatesRating(t *testing.T) {
	handler, store := newTestHandler(t)
	ctx := context.Background()
	seedSession(t, store, "s-1")

	output, err := handler.Execute(ctx, &Input{SessionID: "s-1", Dimension: "incident", Rating: 2})
	require.NoError(t, err)

	assert.Equal(t, "s-1", output.SessionID)
	assert.Equal(t, string(sessions.StateScoring), output.State)
	assert.Equal(t, 2, output.Ratings["incident"])

	// persisted
	session, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, 2, session.Ratings["incident"])
}

func TestHandler_Execute_LastWriterWins(t *testing.T) {
	handler, store := newTestHandler(t)
	ctx := context.Background()
	seedSession(t, store, "s-1")

	_, err := handler.Execute(ctx, &Input{SessionID: "s-1", Dimension: "kpi", Rating: 1})
	require.NoError(t, err)
	output, err := handler.Execute(ctx, &Input{SessionID: "s-1", Dimension: "kpi", Rating: 5})
	require.NoError(t, err)

	assert.Equal(t, 5, output.Ratings["kpi"])
}

func TestHandler_Execute_Errors(t *testing.T) {
	handler, store := newTestHandler(t)
	ctx := context.Background()
	seedSession(t, store, "s-1")

	tests := []struct {
		name     string
		input    *Input
		wantCode stderrors.ErrorCode
	}{
		{
			name:     "unknown session",
			input:    &Input{SessionID: "nope", Dimension: "incident", Rating: 3},
			wantCode: stderrors.ErrCodeSessionNotFound,
		},
		{
			name:     "unknown dimension",
			input:    &Input{SessionID: "s-1", Dimension: "finance", Rating: 3},
			wantCode: stderrors.ErrCodeInvalidRating,
		},
		{
			name:     "rating below range",
			input:    &Input{SessionID: "s-1", Dimension: "incident", Rating: 0},
			wantCode: stderrors.ErrCodeInvalidRating,
		},
		{
			name:     "rating above range",
			input:    &Input{SessionID: "s-1", Dimension: "incident", Rating: 6},
			wantCode: stderrors.ErrCodeInvalidRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Execute(ctx, tt.input)
			require.Error(t, err)
			stdErr, ok := err.(*stderrors.StandardError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
		})
	}
}
