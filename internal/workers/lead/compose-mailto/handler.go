// internal/workers/lead/compose-mailto/handler.go
package composemailto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compose-mailto"
)

// Handler builds the RFC 6068 mailto URL for the degraded capture path: when
// the intake endpoint rejects a submission, the visitor gets a prefilled
// email carrying the same lead details instead of losing them.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for compose-mailto: %w", err)
	}
	return &Handler{
		config: config,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "COMPOSE_FAILED").Inc()
		h.failJob(client, job, "COMPOSE_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	subject := "Operations assessment follow-up"
	if input.ScorerRating != "" {
		subject = fmt.Sprintf("Operations assessment follow-up (%s)", input.ScorerRating)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\n", input.Name)
	fmt.Fprintf(&body, "Email: %s\n", input.Email)
	if input.ScorerScore != "" {
		fmt.Fprintf(&body, "Readiness score: %s\n", input.ScorerScore)
	}
	if input.ScorerRating != "" {
		fmt.Fprintf(&body, "Risk tier: %s\n", input.ScorerRating)
	}
	if input.ScorerContext != "" {
		fmt.Fprintf(&body, "Situation: %s\n", input.ScorerContext)
	}

	// RFC 6068 uses percent-encoding throughout; url.Values encodes spaces
	// as "+", so query escaping is applied per component instead.
	mailtoURL := fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		h.config.Address,
		url.QueryEscape(subject),
		url.QueryEscape(body.String()),
	)
	mailtoURL = strings.ReplaceAll(mailtoURL, "+", "%20")

	h.logger.Info("mailto composed", map[string]interface{}{
		"to": h.config.Address,
	})

	return &Output{MailtoURL: mailtoURL}, nil
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
