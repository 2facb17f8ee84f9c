// internal/workers/assessment/generate-recommendations/handler.go
package generaterecommendations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"assessment-workers/internal/assessment"
	"assessment-workers/internal/catalog"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"
	"assessment-workers/internal/sessions"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-recommendations"
)

type Handler struct {
	config     *Config
	catalog    *catalog.Catalog
	store      *sessions.Store
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, cat *catalog.Catalog, store *sessions.Store, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		catalog:    cat,
		store:      store,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
		errHandler: errors.NewErrorHandler(log),
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCodeFor(err)).Inc()
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	session, err := h.store.Get(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	plan, skipped, err := assessment.Recommend(session.Ratings, session.Context, h.catalog)
	if err != nil {
		return nil, errors.NewInvalidContextTagError(session.Context)
	}

	// Fail closed: a skipped dimension means the recommendation table lost an
	// entry. The rest of the plan still ships; the gap gets logged loudly.
	for _, dimension := range skipped {
		integrityErr := errors.NewCatalogIntegrityGapError(
			fmt.Sprintf("no recommendation entry for dimension %q", dimension))
		h.logger.Error("catalog integrity gap", map[string]interface{}{
			"sessionId": session.ID,
			"dimension": dimension,
			"errorCode": integrityErr.Code,
		})
	}

	h.logger.Info("recommendations generated", map[string]interface{}{
		"sessionId": session.ID,
		"context":   session.Context,
		"count":     len(plan),
		"skipped":   len(skipped),
	})

	return &Output{
		SessionID:       session.ID,
		Context:         session.Context,
		Recommendations: plan,
		Count:           len(plan),
	}, nil
}

func errorCodeFor(err error) string {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
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
