// internal/workers/lead/create-lead-record/handler_test.go
package createleadrecord

import (
	"context"
	"errors"
	"testing"

	"assessment-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
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

func testInput() *Input {
	return &Input{
		Name:          "Dana Ops",
		Email:         "dana@example.com",
		ScorerRating:  "at-risk",
		ScorerScore:   "3.7",
		ScorerContext: "post",
		ArtifactURL:   "https://assets.example.com/ops-playbook.pdf",
		IntakeSent:    true,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_InsertsLeadAndAudit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("dana@example.com", "post").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(`INSERT INTO leads`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))
	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.NotEmpty(t, output.LeadID)
	assert.NotEmpty(t, output.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DuplicateLead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("dana@example.com", "post").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))
	_, err = handler.Execute(context.Background(), testInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateLead))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(`INSERT INTO leads`).
		WillReturnError(errors.New("connection reset"))

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))
	_, err = handler.Execute(context.Background(), testInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabaseInsertFailed))
}

func TestHandler_Execute_AuditFailureDoesNotFailLead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(`INSERT INTO leads`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnError(errors.New("audit table locked"))

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))
	output, err := handler.Execute(context.Background(), testInput())

	require.NoError(t, err)
	assert.NotEmpty(t, output.LeadID)
}

func TestHandler_Execute_SameEmailNewContextIsFreshLead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("dana@example.com", "pre").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(`INSERT INTO leads`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	input := testInput()
	input.ScorerContext = "pre"

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))
	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, output.LeadID)
}
