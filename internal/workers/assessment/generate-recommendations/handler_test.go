// internal/workers/assessment/generate-recommendations/handler_test.go
package generaterecommendations

import (
	"context"
	"testing"
	"time"

	"assessment-workers/internal/assessment"
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

func newTestHandler(t *testing.T, cat *catalog.Catalog) (*Handler, *sessions.Store) {
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	store := sessions.NewStore(client, time.Hour)
	return NewHandler(LoadConfig(), cat, store, newTestLogger(t)), store
}

func seedSession(t *testing.T, store *sessions.Store, id, contextTag string, ratings map[string]int) {
	t.Helper()
	cat := catalog.Default()
	session, err := sessions.New(id, contextTag, cat)
	require.NoError(t, err)
	for dimension, rating := range ratings {
		require.NoError(t, session.SetRating(dimension, rating, cat))
	}
	require.NoError(t, store.Save(context.Background(), session))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_TwoCriticalGaps(t *testing.T) {
	handler, store := newTestHandler(t, catalog.Default())
	ctx := context.Background()
	seedSession(t, store, "s-1", catalog.ContextPostClose, map[string]int{
		"incident": 1, "change": 1, "vendor": 5,
		"audit": 5, "kpi": 5, "process": 5,
	})

	output, err := handler.Execute(ctx, &Input{SessionID: "s-1"})
	require.NoError(t, err)

	assert.Equal(t, 2, output.Count)
	require.Len(t, output.Recommendations, 2)
	assert.Equal(t, "incident", output.Recommendations[0].Dimension)
	assert.Equal(t, "change", output.Recommendations[1].Dimension)
	for _, item := range output.Recommendations {
		assert.Equal(t, catalog.ContextPostClose, item.Context)
		assert.Equal(t, assessment.GapCritical, item.GapClass)
		assert.NotEmpty(t, item.Action)
		assert.NotEmpty(t, item.WindowDays)
	}
}

func TestHandler_Execute_CapAtFour(t *testing.T) {
	handler, store := newTestHandler(t, catalog.Default())
	seedSession(t, store, "s-1", catalog.ContextMidHold, map[string]int{
		"incident": 1, "change": 1, "vendor": 1,
		"audit": 1, "kpi": 1, "process": 1,
	})

	output, err := handler.Execute(context.Background(), &Input{SessionID: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, assessment.MaxRecommendations, output.Count)
}

func TestHandler_Execute_NoGapsNoRecommendations(t *testing.T) {
	handler, store := newTestHandler(t, catalog.Default())
	seedSession(t, store, "s-1", catalog.ContextPreClose, map[string]int{
		"incident": 5, "change": 5, "vendor": 5,
		"audit": 5, "kpi": 5, "process": 5,
	})

	output, err := handler.Execute(context.Background(), &Input{SessionID: "s-1"})
	require.NoError(t, err)
	assert.Zero(t, output.Count)
	assert.Empty(t, output.Recommendations)
}

func TestHandler_Execute_MissingTableEntryOmitsItem(t *testing.T) {
	broken := catalog.Default()
	delete(broken.Recommendations, "incident")
	handler, store := newTestHandler(t, broken)
	seedSession(t, store, "s-1", catalog.ContextPreClose, map[string]int{
		"incident": 1, "change": 1, "vendor": 5,
		"audit": 5, "kpi": 5, "process": 5,
	})

	output, err := handler.Execute(context.Background(), &Input{SessionID: "s-1"})
	require.NoError(t, err)

	// incident is dropped, change survives
	require.Len(t, output.Recommendations, 1)
	assert.Equal(t, "change", output.Recommendations[0].Dimension)
}

func TestHandler_Execute_UnknownSession(t *testing.T) {
	handler, _ := newTestHandler(t, catalog.Default())

	_, err := handler.Execute(context.Background(), &Input{SessionID: "nope"})
	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeSessionNotFound, stdErr.Code)
}
