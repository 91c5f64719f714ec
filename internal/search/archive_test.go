package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loandesk/internal/common/database"
	stderrors "loandesk/internal/common/errors"
	"loandesk/internal/common/logger"
)

func newTestArchive(t *testing.T, handler http.HandlerFunc) *Archive {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	return NewArchive(&database.ElasticsearchClient{Client: client}, logger.NewNoOpLogger())
}

func TestNilArchiveIsSafe(t *testing.T) {
	var a *Archive

	assert.False(t, a.Enabled())
	a.IndexConsultation(context.Background(), "sid", "prompt", "answer")
	a.IndexNews(context.Background(), "content")

	_, err := a.Search(context.Background(), "LTV", 10)
	require.Error(t, err)
	stdErr, ok := stderrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeArchiveDisabled, stdErr.Code)
}

func TestSearchParsesHits(t *testing.T) {
	archive := newTestArchive(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{
				"hits": []map[string]interface{}{
					{"_source": map[string]interface{}{
						"id":      "1",
						"kind":    "consultation",
						"content": "LTV 상담 내용",
					}},
				},
			},
		})
	})

	docs, err := archive.Search(context.Background(), "LTV", 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "consultation", docs[0].Kind)
	assert.Equal(t, "LTV 상담 내용", docs[0].Content)
}

func TestSearchErrorSurfacesAsStandardError(t *testing.T) {
	archive := newTestArchive(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := archive.Search(context.Background(), "LTV", 10)
	require.Error(t, err)
	stdErr, ok := stderrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeSearchQueryFailed, stdErr.Code)
}

func TestIndexConsultationIsBestEffort(t *testing.T) {
	archive := newTestArchive(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	// Must not panic or surface anything.
	archive.IndexConsultation(context.Background(), "sid", "prompt", "answer")
	archive.IndexNews(context.Background(), "content")
}
