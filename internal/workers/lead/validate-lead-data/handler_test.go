// internal/workers/lead/validate-lead-data/handler_test.go
package validateleaddata

import (
	"context"
	"testing"

	"assessment-workers/internal/common/logger"

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

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Validation(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	tests := []struct {
		name      string
		input     *Input
		wantValid bool
	}{
		{
			name:      "valid lead",
			input:     &Input{Name: "Dana Ops", Email: "dana@example.com"},
			wantValid: true,
		},
		{
			name:      "email without at sign",
			input:     &Input{Name: "Dana Ops", Email: "not-an-email"},
			wantValid: false,
		},
		{
			name:      "empty email",
			input:     &Input{Name: "Dana Ops", Email: ""},
			wantValid: false,
		},
		{
			name:      "name is optional",
			input:     &Input{Name: "", Email: "dana@example.com"},
			wantValid: true,
		},
		{
			name:      "whitespace-only name still optional",
			input:     &Input{Name: "   ", Email: "dana@example.com"},
			wantValid: true,
		},
		{
			name:      "whitespace-only email",
			input:     &Input{Name: "Dana Ops", Email: "   "},
			wantValid: false,
		},
		{
			name:      "minimal at-sign email accepted",
			input:     &Input{Name: "D", Email: "a@b"},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, output.Valid)
			if !tt.wantValid {
				assert.NotEmpty(t, output.Errors)
			} else {
				assert.Empty(t, output.Errors)
			}
		})
	}
}

func TestHandler_Execute_TrimsWhitespace(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Name:  "  Dana Ops  ",
		Email: "  dana@example.com  ",
	})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Equal(t, "Dana Ops", output.Name)
	assert.Equal(t, "dana@example.com", output.Email)
}
