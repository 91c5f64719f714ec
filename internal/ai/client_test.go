package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loandesk/internal/common/config"
	"loandesk/internal/common/logger"
)

func testClient(t *testing.T, baseURL string) *Client {
	cfg := config.APIsConfig{}
	cfg.GenAI.BaseURL = baseURL
	cfg.GenAI.APIKey = "test-key"
	cfg.GenAI.Model = "test-model"
	cfg.GenAI.NewsModel = "test-news-model"
	cfg.GenAI.Timeout = 2000
	cfg.GenAI.MaxRetries = 3

	return NewClient(cfg, logger.NewTestLogger(t))
}

func candidateResponse(text string, uris ...string) map[string]interface{} {
	chunks := make([]map[string]interface{}, len(uris))
	for i, uri := range uris {
		chunks[i] = map[string]interface{}{"web": map[string]interface{}{"uri": uri}}
	}
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content":           map[string]interface{}{"parts": []map[string]string{{"text": text}}},
				"groundingMetadata": map[string]interface{}{"groundingChunks": chunks},
			},
		},
	}
}

func TestConsult(t *testing.T) {
	t.Run("sends system instruction and returns answer", func(t *testing.T) {
		var captured generateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(candidateResponse("상담 답변입니다."))
		}))
		defer srv.Close()

		client := testClient(t, srv.URL)
		answer, err := client.Consult(context.Background(), "LTV 한도 문의", "")
		require.NoError(t, err)

		assert.Equal(t, "상담 답변입니다.", answer)
		require.NotNil(t, captured.SystemInstruction)
		instruction := captured.SystemInstruction.Parts[0].Text
		assert.Contains(t, instruction, "여신 파트너")
		assert.Contains(t, instruction, "현재 업로드된 추가 파일 지침이 없습니다")
		assert.Equal(t, "LTV 한도 문의", captured.Contents[0].Parts[0].Text)
		assert.NotEmpty(t, captured.Tools)
	})

	t.Run("uploaded context replaces the empty notice", func(t *testing.T) {
		var captured generateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(candidateResponse("ok"))
		}))
		defer srv.Close()

		client := testClient(t, srv.URL)
		_, err := client.Consult(context.Background(), "질문", "2026년 내부 지침 개정본")
		require.NoError(t, err)

		instruction := captured.SystemInstruction.Parts[0].Text
		assert.Contains(t, instruction, "2026년 내부 지침 개정본")
		assert.NotContains(t, instruction, "현재 업로드된 추가 파일 지침이 없습니다")
	})

	t.Run("appends grounding links", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(candidateResponse("답변", "https://a.example", "https://b.example"))
		}))
		defer srv.Close()

		client := testClient(t, srv.URL)
		answer, err := client.Consult(context.Background(), "질문", "")
		require.NoError(t, err)

		assert.Contains(t, answer, "관련 참고 링크:")
		assert.Contains(t, answer, "- https://a.example")
		assert.Contains(t, answer, "- https://b.example")
	})

	t.Run("retries server errors then succeeds", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(candidateResponse("늦었지만 성공"))
		}))
		defer srv.Close()

		client := testClient(t, srv.URL)
		answer, err := client.Consult(context.Background(), "질문", "")
		require.NoError(t, err)
		assert.Equal(t, "늦었지만 성공", answer)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("client error is not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		client := testClient(t, srv.URL)
		_, err := client.Consult(context.Background(), "질문", "")
		assert.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestFetchLatestNews(t *testing.T) {
	t.Run("returns summary text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(candidateResponse("대출 규제 뉴스 요약"))
		}))
		defer srv.Close()

		client := testClient(t, srv.URL)
		text, err := client.FetchLatestNews(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "대출 규제 뉴스 요약", text)
	})

	t.Run("empty answer degrades to fallback text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
		}))
		defer srv.Close()

		client := testClient(t, srv.URL)
		text, err := client.FetchLatestNews(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "뉴스를 불러오지 못했습니다.", text)
	})
}

func TestParseNewsItems(t *testing.T) {
	t.Run("splits lines, strips markdown, drops short lines", func(t *testing.T) {
		raw := "# 주요 뉴스 헤드라인\n\nok\n*LTV 규제가 강화되었습니다*\n   정부가 DSR 정책을 발표했습니다   \n"
		items := ParseNewsItems(raw)

		require.Len(t, items, 3)
		assert.Equal(t, "주요 뉴스 헤드라인", items[0].Content)
		assert.Equal(t, "LTV 규제가 강화되었습니다", items[1].Content)
		assert.Equal(t, "정부가 DSR 정책을 발표했습니다", items[2].Content)

		for _, item := range items {
			assert.NotEmpty(t, item.ID)
			assert.Greater(t, item.Timestamp, int64(0))
		}
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		items := ParseNewsItems("")
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("five characters or fewer are dropped", func(t *testing.T) {
		assert.Empty(t, ParseNewsItems("12345"))
		assert.Len(t, ParseNewsItems("123456"), 1)
	})
}
