// internal/workers/lead/capture-lead/handler.go
package capturelead

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/intake"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "capture-lead"
)

// IntakeSubmitter is satisfied by the intake HTTP client.
type IntakeSubmitter interface {
	Submit(ctx context.Context, payload *intake.Payload) error
}

// Handler runs the lead-capture pipeline. Ordering is the contract here:
// validation happens before any side effect, the artifact is delivered before
// the intake call, and an intake rejection degrades to the mailto path
// without touching the already-delivered artifact. The intake call is made at
// most once per job; rejections are terminal, not retryable.
type Handler struct {
	config *Config
	intake IntakeSubmitter
	logger logger.Logger
}

func NewHandler(config *Config, intakeClient IntakeSubmitter, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for capture-lead: %w", err)
	}
	return &Handler{
		config: config,
		intake: intakeClient,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	// Validation gate: nothing observable happens on invalid input. The
	// display name is optional.
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.NewLeadValidationFailedError(
			fmt.Sprintf("a valid email is required (email: %q)", email))
	}

	// Artifact delivery precedes the intake call unconditionally. From here
	// on the submission succeeds no matter what the endpoint does.
	artifactURL := h.config.ArtifactURL
	metrics.ArtifactDeliveries.Inc()
	h.logger.Info("artifact delivered", map[string]interface{}{
		"email":       email,
		"artifactUrl": artifactURL,
	})

	payload := &intake.Payload{
		Name:          name,
		Email:         email,
		ScorerRating:  input.ScorerRating,
		ScorerScore:   input.ScorerScore,
		ScorerContext: input.ScorerContext,
	}

	if err := h.intake.Submit(ctx, payload); err != nil {
		metrics.LeadIntakeOutcomes.WithLabelValues("rejected").Inc()
		h.logger.Warn("intake rejected submission, degrading to mailto path", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return &Output{
			OK:          true,
			Sent:        false,
			ArtifactURL: artifactURL,
			FallbackTo:  h.config.MailtoAddress,
			Error:       "could not submit, use the email path",
		}, nil
	}

	metrics.LeadIntakeOutcomes.WithLabelValues("accepted").Inc()
	h.logger.Info("lead captured", map[string]interface{}{
		"email": email,
	})

	return &Output{
		OK:          true,
		Sent:        true,
		ArtifactURL: artifactURL,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
