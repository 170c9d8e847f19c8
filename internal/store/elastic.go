// internal/store/elastic.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"fraudscan-workers/internal/common/database"
	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/common/logger"
)

// SearchIndexer mirrors completed analyses into Elasticsearch so the
// presentation layer can run full-text and aggregation queries that Postgres
// listings do not cover.
type SearchIndexer struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewSearchIndexer(es *database.ElasticsearchClient, index string, log logger.Logger) *SearchIndexer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &SearchIndexer{es: es, index: index, logger: log}
}

// Index writes one stored analysis as a document keyed by its analysis ID, so
// re-indexing is idempotent.
func (s *SearchIndexer) Index(ctx context.Context, stored *StoredAnalysis) error {
	doc, err := json.Marshal(stored)
	if err != nil {
		return errors.NewSearchIndexFailedError(err)
	}

	res, err := s.es.Client.Index(
		s.index,
		bytes.NewReader(doc),
		s.es.Client.Index.WithDocumentID(stored.ID),
		s.es.Client.Index.WithContext(ctx),
	)
	if err != nil {
		return errors.NewSearchIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewSearchIndexFailedError(fmt.Errorf("index response: %s", res.Status()))
	}

	s.logger.Debug("Analysis indexed", map[string]interface{}{
		"analysis_id": stored.ID,
		"index":       s.index,
	})
	return nil
}
