// internal/workers/lead/validate-lead-data/handler.go
package validateleaddata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"
	"assessment-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-lead-data"
)

// Handler validates lead submissions synchronously. Invalid input completes
// the job with valid=false so the workflow can branch back to the form; it is
// never a technical failure and never retried.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "VALIDATION_ERROR").Inc()
		h.failJob(client, job, "VALIDATION_ERROR", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	// The display name is optional; only the email gates the submission.
	var validationErrors []string
	if email == "" {
		validationErrors = append(validationErrors, "email is required")
	} else if !strings.Contains(email, "@") {
		validationErrors = append(validationErrors, "email must contain @")
	}

	// schema pass catches structural surprises the field checks miss
	if len(validationErrors) == 0 {
		result := validation.ValidateInput(map[string]interface{}{
			"name":  name,
			"email": email,
		}, GetInputSchema())
		if !result.Valid {
			validationErrors = append(validationErrors, validation.FormatErrors(result))
		}
	}

	if len(validationErrors) > 0 {
		h.logger.Info("lead data rejected", map[string]interface{}{
			"errors": validationErrors,
		})
		return &Output{Valid: false, Errors: validationErrors, Name: name, Email: email}, nil
	}

	h.logger.Info("lead data validated", map[string]interface{}{
		"email": email,
	})

	return &Output{Valid: true, Name: name, Email: email}, nil
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
