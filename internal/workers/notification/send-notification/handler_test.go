// internal/workers/notification/send-notification/handler_test.go
package sendnotification

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"assessment-workers/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/service/sns"
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

type fakeSNS struct {
	lastInput *sns.PublishInput
	err       error
	calls     int
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput) (*sns.PublishOutput, error) {
	f.calls++
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func newTestHandler(t *testing.T, client SNSService, enabled bool) *Handler {
	cfg := DefaultConfig()
	cfg.Enabled = enabled
	cfg.Timeout = 5 * time.Second
	cfg.TopicARN = "arn:aws:sns:us-east-1:000000000000:assessment-leads"
	handler, err := NewHandlerWithClient(cfg, client, newTestLogger(t))
	require.NoError(t, err)
	return handler
}

func testInput() *Input {
	return &Input{
		LeadID:        "lead-123",
		Name:          "Dana Ops",
		Email:         "dana@example.com",
		ScorerRating:  "at-risk",
		ScorerScore:   "3.7",
		ScorerContext: "post",
		IntakeSent:    true,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_PublishesLeadEvent(t *testing.T) {
	fake := &fakeSNS{}
	handler := newTestHandler(t, fake, true)

	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	assert.NotEmpty(t, output.NotificationID)
	assert.Equal(t, 1, fake.calls)

	require.NotNil(t, fake.lastInput)
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:assessment-leads", *fake.lastInput.TopicArn)
	assert.Equal(t, "New assessment lead: Dana Ops", *fake.lastInput.Subject)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(*fake.lastInput.Message), &event))
	assert.Equal(t, "lead.captured", event["event"])
	assert.Equal(t, "lead-123", event["leadId"])
	assert.Equal(t, "dana@example.com", event["email"])
	assert.Equal(t, true, event["intakeSent"])
}

func TestHandler_Execute_PublishFailure(t *testing.T) {
	fake := &fakeSNS{err: stderrors.New("topic unreachable")}
	handler := newTestHandler(t, fake, true)

	_, err := handler.Execute(context.Background(), testInput())

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrNotificationSendFailed))
}

func TestHandler_Execute_DisabledSkipsPublish(t *testing.T) {
	fake := &fakeSNS{}
	handler := newTestHandler(t, fake, false)

	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, StatusDisabled, output.Status)
	assert.Equal(t, 0, fake.calls)
}

func TestNewHandlerWithClient_RequiresTopic(t *testing.T) {
	cfg := DefaultConfig()
	_, err := NewHandlerWithClient(cfg, &fakeSNS{}, newTestLogger(t))
	assert.Error(t, err)
}
