// internal/workers/communication/email-send/handler.go
package emailsend

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	commonaws "assessment-workers/internal/common/aws"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "email-send"
)

var (
	ErrEmailSendFailed = stderrors.New("EMAIL_SEND_FAILED")
)

// SESService is the slice of the SES API the handler needs; tests inject a
// fake, production wires the real client.
type SESService interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// Handler delivers the assessment playbook link by email. The artifact is
// already handed to the visitor in-page before this runs, so a failed send
// degrades the experience but never loses the artifact.
type Handler struct {
	config     *Config
	logger     logger.Logger
	sesClient  SESService
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for email-send: %w", err)
	}

	sesClient, err := commonaws.NewSESClient(context.Background(), config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}

	return &Handler{
		config:     config,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient:  sesClient,
		errHandler: errors.NewErrorHandler(log),
	}, nil
}

// NewHandlerWithClient bypasses AWS config loading for tests.
func NewHandlerWithClient(config *Config, client SESService, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for email-send: %w", err)
	}
	return &Handler{
		config:     config,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient:  client,
		errHandler: errors.NewErrorHandler(log),
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
		if stderrors.Is(err, ErrEmailSendFailed) {
			err = errors.NewEmailSendFailedError(err)
		}
		errorCode := "EMAIL_SEND_FAILED"
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !h.isValidEmail(input.To) {
		return nil, &errors.StandardError{
			Code:      "VALIDATION_FAILED",
			Message:   "Email validation failed",
			Details:   fmt.Sprintf("invalid 'to' email address: %s", input.To),
			Retryable: false,
			Timestamp: time.Now(),
		}
	}
	if input.ArtifactURL == "" {
		return nil, &errors.StandardError{
			Code:      "VALIDATION_FAILED",
			Message:   "Email validation failed",
			Details:   "artifactUrl is required",
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	subject, body := h.buildMessage(input)

	result, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{input.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromAddress),
	})
	if err != nil {
		h.logger.Error("email send failed", map[string]interface{}{
			"error": err,
			"to":    input.To,
		})
		return nil, fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}

	h.logger.Info("email sent successfully", map[string]interface{}{
		"to":        input.To,
		"messageId": messageID,
	})

	return &Output{
		Success:   true,
		MessageID: messageID,
		Provider:  "SES",
		SentAt:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) buildMessage(input *Input) (string, string) {
	subject := "Your operations readiness playbook"

	var body strings.Builder
	greeting := "Hello"
	if input.Name != "" {
		greeting = fmt.Sprintf("Hello %s", input.Name)
	}
	fmt.Fprintf(&body, "%s,\n\n", greeting)
	body.WriteString("Thanks for completing the operations readiness assessment. Your playbook is here:\n\n")
	fmt.Fprintf(&body, "%s\n", input.ArtifactURL)
	if input.ScorerScore != "" && input.ScorerRating != "" {
		fmt.Fprintf(&body, "\nYour readiness score: %s (%s)\n", input.ScorerScore, input.ScorerRating)
	}
	body.WriteString("\nReply to this email if you would like to talk through the results.\n")

	return subject, body.String()
}

func (h *Handler) isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
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
