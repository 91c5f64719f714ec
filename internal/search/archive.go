// Package search keeps an optional Elasticsearch archive of consultation
// reports and news items. When Elasticsearch is not configured the archive is
// nil and every call short-circuits.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	"loandesk/internal/common/database"
	stderrors "loandesk/internal/common/errors"
	"loandesk/internal/common/logger"
)

const archiveIndex = "loandesk-archive"

// Document is one archived consultation or news entry.
type Document struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // "consultation" | "news"
	SessionID string    `json:"sessionId,omitempty"`
	Prompt    string    `json:"prompt,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Archive struct {
	es  *database.ElasticsearchClient
	log logger.Logger
}

// NewArchive returns nil when no Elasticsearch client is available; all
// methods are nil-safe.
func NewArchive(es *database.ElasticsearchClient, log logger.Logger) *Archive {
	if es == nil {
		return nil
	}
	return &Archive{es: es, log: log}
}

// Enabled reports whether the archive is active.
func (a *Archive) Enabled() bool {
	return a != nil
}

// IndexConsultation archives one consultation round trip. Best-effort: the
// caller never fails because archiving did.
func (a *Archive) IndexConsultation(ctx context.Context, sessionID, prompt, answer string) {
	if a == nil {
		return
	}
	a.index(ctx, Document{
		ID:        uuid.NewString(),
		Kind:      "consultation",
		SessionID: sessionID,
		Prompt:    prompt,
		Content:   answer,
		CreatedAt: time.Now().UTC(),
	})
}

// IndexNews archives one news summary line, best-effort.
func (a *Archive) IndexNews(ctx context.Context, content string) {
	if a == nil {
		return
	}
	a.index(ctx, Document{
		ID:        uuid.NewString(),
		Kind:      "news",
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

func (a *Archive) index(ctx context.Context, doc Document) {
	body, err := json.Marshal(doc)
	if err != nil {
		a.log.WithError(err).Warn("archive index skipped, marshal failed", nil)
		return
	}

	req := esapi.IndexRequest{
		Index:      archiveIndex,
		DocumentID: doc.ID,
		Body:       strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, a.es.Client)
	if err != nil {
		a.log.WithError(err).Warn("archive index failed", map[string]interface{}{"kind": doc.Kind})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		a.log.Warn("archive index rejected", map[string]interface{}{
			"kind":   doc.Kind,
			"status": res.Status(),
		})
	}
}

// Search runs a match query over archived content and prompts.
func (a *Archive) Search(ctx context.Context, query string, size int) ([]Document, error) {
	if a == nil {
		return nil, stderrors.NewArchiveDisabledError()
	}
	if size <= 0 {
		size = 20
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"content", "prompt"},
			},
		},
		"size": size,
		"sort": []map[string]interface{}{
			{"createdAt": map[string]interface{}{"order": "desc"}},
		},
	}

	body, _ := json.Marshal(queryBody)
	req := esapi.SearchRequest{
		Index: []string{archiveIndex},
		Body:  strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, a.es.Client)
	if err != nil {
		return nil, stderrors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, stderrors.NewSearchQueryFailedError(fmt.Errorf("search failed: %s", res.Status()))
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, stderrors.NewSearchQueryFailedError(err)
	}

	docs := make([]Document, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}
