// internal/workers/catalog/search-levers/indexer.go
package searchlevers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"assessment-workers/internal/catalog"
	"assessment-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
)

// SeedIndex writes the full lever catalog into the search index, one document
// per lever keyed by lever ID. The catalog is small enough that re-seeding on
// every startup is cheaper than diffing; existing documents are overwritten.
func SeedIndex(ctx context.Context, client *elasticsearch.Client, indexName string, cat *catalog.Catalog, log logger.Logger) error {
	for _, lv := range cat.Levers {
		doc, err := json.Marshal(lv)
		if err != nil {
			return fmt.Errorf("marshal lever %d: %w", lv.ID, err)
		}

		res, err := client.Index(
			indexName,
			bytes.NewReader(doc),
			client.Index.WithContext(ctx),
			client.Index.WithDocumentID(strconv.Itoa(lv.ID)),
		)
		if err != nil {
			return fmt.Errorf("index lever %d: %w", lv.ID, err)
		}

		if res.IsError() {
			body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
			res.Body.Close()
			return fmt.Errorf("index lever %d: %s: %s", lv.ID, res.Status(), string(body))
		}
		res.Body.Close()
	}

	log.Info("lever index seeded", map[string]interface{}{
		"index": indexName,
		"count": len(cat.Levers),
	})
	return nil
}
