// internal/workers/lead/create-lead-record/handler.go
package createleadrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stderrors "assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"
	"assessment-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-lead-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateLead        = errors.New("DUPLICATE_LEAD")
)

// Handler persists captured leads. A repeat submission with the same email
// and scorer context is treated as a duplicate; the same email under a new
// context is a fresh signal and stored again.
type Handler struct {
	config     *Config
	db         *sql.DB
	logger     logger.Logger
	errHandler *stderrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		db:         db,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
		errHandler: stderrors.NewErrorHandler(log),
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
		errorCode := "UNKNOWN_ERROR"
		jobErr := err
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
			jobErr = stderrors.NewDatabaseInsertFailedError(err)
		} else if errors.Is(err, ErrDuplicateLead) {
			errorCode = "DUPLICATE_LEAD"
			jobErr = stderrors.NewDuplicateLeadError(input.Email, input.ScorerContext)
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.errHandler.HandleJobError(ctx, client, job, jobErr)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leads
			WHERE email = $1 AND scorer_context = $2
		)`, input.Email, input.ScorerContext).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: lead already recorded for email %s in context %q",
			ErrDuplicateLead, input.Email, input.ScorerContext)
	}

	record := models.LeadRecord{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Email:         input.Email,
		ScorerRating:  input.ScorerRating,
		ScorerScore:   input.ScorerScore,
		ScorerContext: input.ScorerContext,
		ArtifactURL:   input.ArtifactURL,
		IntakeSent:    input.IntakeSent,
		CreatedAt:     time.Now().UTC(),
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO leads (
			id, name, email, scorer_rating, scorer_score, scorer_context,
			artifact_url, intake_sent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID,
		record.Name,
		record.Email,
		record.ScorerRating,
		record.ScorerScore,
		record.ScorerContext,
		record.ArtifactURL,
		record.IntakeSent,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	// Audit entry is best-effort; a failed audit write never fails the lead.
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"email":         input.Email,
		"scorerRating":  input.ScorerRating,
		"scorerContext": input.ScorerContext,
		"intakeSent":    input.IntakeSent,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"lead_created",
		"lead",
		record.ID,
		auditDetailsJSON,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":  err,
			"leadId": record.ID,
		})
	}

	h.logger.Info("lead record created", map[string]interface{}{
		"leadId":     record.ID,
		"email":      input.Email,
		"intakeSent": input.IntakeSent,
	})

	return &Output{
		LeadID:    record.ID,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
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
