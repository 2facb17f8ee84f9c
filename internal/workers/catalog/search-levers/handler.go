// internal/workers/catalog/search-levers/handler.go
package searchlevers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"assessment-workers/internal/catalog"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType = "search-levers"
)

var (
	ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")
)

// Handler serves full-text lever search over the Elasticsearch index. The
// in-memory filter worker stays authoritative for exact predicate filtering;
// this path adds relevance-ranked text search across all lever fields. When
// the cluster is unreachable the handler degrades to the in-memory substring
// filter instead of failing the job.
type Handler struct {
	config  *Config
	client  *elasticsearch.Client
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		client:  client,
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "SEARCH_QUERY_FAILED").Inc()
		h.failJob(client, job, "SEARCH_QUERY_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	query, err := buildQuery(input, h.config.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}

	output, err := h.search(ctx, query)
	if err != nil {
		h.logger.Warn("search cluster unavailable, serving in-memory filter", map[string]interface{}{
			"error": err.Error(),
		})
		return h.fallback(input), nil
	}

	h.logger.Info("lever search executed", map[string]interface{}{
		"text":      input.Text,
		"totalHits": output.TotalHits,
		"took":      output.Took,
	})

	return output, nil
}

func (h *Handler) search(ctx context.Context, query string) (*Output, error) {
	res, err := h.client.Search(
		h.client.Search.WithContext(ctx),
		h.client.Search.WithIndex(h.config.IndexName),
		h.client.Search.WithBody(strings.NewReader(query)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("search returned %s: %s", res.Status(), string(body))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %v", err)
	}

	return parseResponse(body)
}

// fallback answers from the compiled-in catalog when the cluster is down.
// Substring matching stands in for relevance ranking; results keep catalog
// order and the output is flagged so callers know ranking was skipped.
func (h *Handler) fallback(input *Input) *Output {
	levers := catalog.Filter(h.catalog.Levers, catalog.Query{
		Text:     input.Text,
		Domain:   input.Domain,
		Timing:   input.Timing,
		Severity: input.Severity,
	})

	total := len(levers)
	size := input.Size
	if size <= 0 || size > h.config.MaxResults {
		size = h.config.MaxResults
	}
	if len(levers) > size {
		levers = levers[:size]
	}

	return &Output{
		Levers:    levers,
		TotalHits: total,
		Fallback:  true,
	}
}

// buildQuery constructs the bool query: one multi_match over the text fields
// plus a term filter per non-empty enum predicate. The "All" sentinel and
// empty strings bypass a predicate, matching the in-memory filter semantics.
func buildQuery(input *Input, maxResults int) (string, error) {
	size := input.Size
	if size <= 0 || size > maxResults {
		size = maxResults
	}

	boolQuery := map[string]interface{}{}

	text := strings.TrimSpace(input.Text)
	if text != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  text,
					"fields": []string{"name^2", "definition", "symptoms", "impact"},
				},
			},
		}
	} else {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	var filters []interface{}
	for _, predicate := range []struct {
		field string
		value string
	}{
		{"domain", input.Domain},
		{"timing", input.Timing},
		{"severity", input.Severity},
	} {
		field, value := predicate.field, predicate.value
		if value == "" || value == "All" {
			continue
		}
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{field + ".keyword": value},
		})
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	query := map[string]interface{}{
		"size":  size,
		"query": map[string]interface{}{"bool": boolQuery},
	}

	raw, err := json.Marshal(query)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func parseResponse(body []byte) (*Output, error) {
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %v", err)
	}

	output := &Output{
		TotalHits: parsed.Hits.Total.Value,
		Took:      parsed.Took,
	}
	for _, hit := range parsed.Hits.Hits {
		output.Levers = append(output.Levers, hit.Source)
	}
	return output, nil
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
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
