// internal/workers/communication/email-send/handler_test.go
package emailsend

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/service/ses"
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

type fakeSES struct {
	lastInput *ses.SendEmailInput
	err       error
	calls     int
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	f.calls++
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	id := "ses-message-id-1"
	return &ses.SendEmailOutput{MessageId: &id}, nil
}

func newTestHandler(t *testing.T, client SESService) *Handler {
	cfg := DefaultConfig()
	cfg.Timeout = 5 * time.Second
	cfg.FromAddress = "hello@example.com"
	handler, err := NewHandlerWithClient(cfg, client, newTestLogger(t))
	require.NoError(t, err)
	return handler
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SendsArtifactEmail(t *testing.T) {
	fake := &fakeSES{}
	handler := newTestHandler(t, fake)

	output, err := handler.Execute(context.Background(), &Input{
		To:           "dana@example.com",
		Name:         "Dana",
		ArtifactURL:  "https://assets.example.com/ops-playbook.pdf",
		ScorerRating: "at-risk",
		ScorerScore:  "3.7",
	})
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, "ses-message-id-1", output.MessageID)
	assert.Equal(t, "SES", output.Provider)
	assert.Equal(t, 1, fake.calls)

	require.NotNil(t, fake.lastInput)
	assert.Equal(t, []string{"dana@example.com"}, fake.lastInput.Destination.ToAddresses)
	assert.Equal(t, "hello@example.com", *fake.lastInput.Source)
	body := *fake.lastInput.Message.Body.Text.Data
	assert.Contains(t, body, "Hello Dana")
	assert.Contains(t, body, "https://assets.example.com/ops-playbook.pdf")
	assert.Contains(t, body, "3.7 (at-risk)")
}

func TestHandler_Execute_InvalidRecipient(t *testing.T) {
	fake := &fakeSES{}
	handler := newTestHandler(t, fake)

	_, err := handler.Execute(context.Background(), &Input{
		To:          "not-an-email",
		ArtifactURL: "https://assets.example.com/ops-playbook.pdf",
	})

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorCode("VALIDATION_FAILED"), stdErr.Code)
	assert.Equal(t, 0, fake.calls, "no send attempt on invalid input")
}

func TestHandler_Execute_MissingArtifactURL(t *testing.T) {
	fake := &fakeSES{}
	handler := newTestHandler(t, fake)

	_, err := handler.Execute(context.Background(), &Input{
		To: "dana@example.com",
	})

	require.Error(t, err)
	assert.Equal(t, 0, fake.calls)
}

func TestHandler_Execute_SendFailure(t *testing.T) {
	fake := &fakeSES{err: stderrors.New("throttled")}
	handler := newTestHandler(t, fake)

	_, err := handler.Execute(context.Background(), &Input{
		To:          "dana@example.com",
		ArtifactURL: "https://assets.example.com/ops-playbook.pdf",
	})

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrEmailSendFailed))
}

func TestHandler_Execute_NoNameUsesGenericGreeting(t *testing.T) {
	fake := &fakeSES{}
	handler := newTestHandler(t, fake)

	_, err := handler.Execute(context.Background(), &Input{
		To:          "dana@example.com",
		ArtifactURL: "https://assets.example.com/ops-playbook.pdf",
	})
	require.NoError(t, err)

	body := *fake.lastInput.Message.Body.Text.Data
	assert.Contains(t, body, "Hello,")
}
