// internal/workers/catalog/search-levers/handler_test.go
package searchlevers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"assessment-workers/internal/catalog"
	"assessment-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
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

func newTestHandler(t *testing.T, serverURL string) *Handler {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{serverURL},
	})
	require.NoError(t, err)
	return NewHandler(DefaultConfig(), client, catalog.Default(), &testLogger{t: t})
}

// ==========================
// Query Builder Tests
// ==========================

func decodeQuery(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var query map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &query))
	return query
}

func TestBuildQuery_TextOnly(t *testing.T) {
	raw, err := buildQuery(&Input{Text: "severity ladder"}, 50)
	require.NoError(t, err)

	query := decodeQuery(t, raw)
	assert.Equal(t, float64(50), query["size"])

	boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "severity ladder", multiMatch["query"])
	assert.Nil(t, boolQuery["filter"])
}

func TestBuildQuery_NoTextUsesMatchAll(t *testing.T) {
	raw, err := buildQuery(&Input{Domain: "vendor"}, 50)
	require.NoError(t, err)

	query := decodeQuery(t, raw)
	boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	_, ok := must[0].(map[string]interface{})["match_all"]
	assert.True(t, ok)

	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 1)
	term := filters[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "vendor", term["domain.keyword"])
}

func TestBuildQuery_AllSentinelSkipsFilter(t *testing.T) {
	raw, err := buildQuery(&Input{Domain: "All", Severity: "All", Timing: "All"}, 50)
	require.NoError(t, err)

	query := decodeQuery(t, raw)
	boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Nil(t, boolQuery["filter"])
}

func TestBuildQuery_CombinedPredicates(t *testing.T) {
	raw, err := buildQuery(&Input{
		Text:     "runbook",
		Domain:   "process",
		Severity: "Medium",
	}, 50)
	require.NoError(t, err)

	query := decodeQuery(t, raw)
	boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	assert.Len(t, filters, 2)
}

func TestBuildQuery_SizeClampedToMax(t *testing.T) {
	raw, err := buildQuery(&Input{Size: 500}, 50)
	require.NoError(t, err)
	assert.Equal(t, float64(50), decodeQuery(t, raw)["size"])

	raw, err = buildQuery(&Input{Size: 10}, 50)
	require.NoError(t, err)
	assert.Equal(t, float64(10), decodeQuery(t, raw)["size"])
}

// ==========================
// Response Parsing Tests
// ==========================

func TestParseResponse(t *testing.T) {
	body := []byte(`{
		"took": 7,
		"hits": {
			"total": {"value": 2},
			"hits": [
				{"_source": {"id": 5, "domain": "vendor", "name": "Unmapped critical vendors", "severity": "Critical", "timing": "Pre-Close Red Flag"}},
				{"_source": {"id": 6, "domain": "vendor", "name": "Auto-renew drift", "severity": "Medium", "timing": "Ongoing Hold"}}
			]
		}
	}`)

	output, err := parseResponse(body)
	require.NoError(t, err)
	assert.Equal(t, 2, output.TotalHits)
	assert.Equal(t, 7, output.Took)
	require.Len(t, output.Levers, 2)
	assert.Equal(t, 5, output.Levers[0].ID)
	assert.Equal(t, "Auto-renew drift", output.Levers[1].Name)
}

func TestParseResponse_Malformed(t *testing.T) {
	_, err := parseResponse([]byte(`{not json`))
	assert.Error(t, err)
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_ServesSearchHits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"took": 4,
			"hits": {
				"total": {"value": 1},
				"hits": [
					{"_source": {"id": 3, "domain": "vendor", "name": "Auto-renew drift", "severity": "Medium", "timing": "Ongoing Hold"}}
				]
			}
		}`))
	}))
	defer server.Close()

	handler := newTestHandler(t, server.URL)

	output, err := handler.Execute(context.Background(), &Input{Text: "auto-renew"})
	require.NoError(t, err)
	assert.False(t, output.Fallback)
	assert.Equal(t, 1, output.TotalHits)
	require.Len(t, output.Levers, 1)
	assert.Equal(t, "Auto-renew drift", output.Levers[0].Name)
}

func TestExecute_ClusterDownFallsBackToCatalogFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	handler := newTestHandler(t, server.URL)

	output, err := handler.Execute(context.Background(), &Input{Domain: "vendor"})
	require.NoError(t, err)
	assert.True(t, output.Fallback)
	assert.NotEmpty(t, output.Levers)
	assert.Equal(t, len(output.Levers), output.TotalHits)
	for _, lv := range output.Levers {
		assert.Equal(t, catalog.DomainVendor, lv.Domain)
	}

	expected := catalog.Filter(catalog.Default().Levers, catalog.Query{Domain: "vendor"})
	assert.Equal(t, expected, output.Levers)
}

func TestExecute_FallbackClampsToSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	handler := newTestHandler(t, server.URL)

	output, err := handler.Execute(context.Background(), &Input{Size: 2})
	require.NoError(t, err)
	assert.True(t, output.Fallback)
	assert.Len(t, output.Levers, 2)
	assert.Equal(t, len(catalog.Default().Levers), output.TotalHits)
}
