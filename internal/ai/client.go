// Package ai wraps the generative API used for loan consultations and the
// daily news summary.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"loandesk/internal/common/config"
	stderrors "loandesk/internal/common/errors"
	"loandesk/internal/common/httpclient"
	"loandesk/internal/common/logger"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client calls the GenAI generateContent endpoint with bounded retries.
type Client struct {
	httpClient *httpclient.Client
	cfg        config.APIsConfig
	log        logger.Logger
}

func NewClient(cfg config.APIsConfig, log logger.Logger) *Client {
	return &Client{
		httpClient: httpclient.NewClient(config.GetDuration(cfg.GenAI.Timeout)),
		cfg:        cfg,
		log:        log,
	}
}

// --- wire types (generateContent) ---

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
}

type tool struct {
	GoogleSearch struct{} `json:"googleSearch"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	Tools             []tool            `json:"tools,omitempty"`
}

type groundingChunk struct {
	Web struct {
		URI string `json:"uri"`
	} `json:"web"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []groundingChunk `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// text concatenates all parts of the first candidate.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var out string
	for _, part := range r.Candidates[0].Content.Parts {
		out += part.Text
	}
	return out
}

// groundingURIs returns the source links of the first candidate.
func (r *generateResponse) groundingURIs() []string {
	if len(r.Candidates) == 0 {
		return nil
	}
	var uris []string
	for _, chunk := range r.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web.URI != "" {
			uris = append(uris, chunk.Web.URI)
		}
	}
	return uris
}

// generate performs one generateContent call with retries and exponential
// backoff. Timeouts surface as CONSULT_TIMEOUT, other failures as
// CONSULT_FAILED.
func (c *Client) generate(ctx context.Context, model string, req generateRequest) (*generateResponse, error) {
	baseURL := c.cfg.GenAI.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", baseURL, model, c.cfg.GenAI.APIKey)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, stderrors.NewConsultFailedError(err)
	}

	maxRetries := c.cfg.GenAI.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			c.log.Warn("genai call retrying", map[string]interface{}{
				"attempt": attempt + 1,
				"backoff": backoff.String(),
			})
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, stderrors.NewConsultTimeoutError()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, stderrors.NewConsultFailedError(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, stderrors.NewConsultTimeoutError()
			}
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("genai returned %d: %s", resp.StatusCode, string(respBody))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, stderrors.NewConsultFailedError(
				fmt.Errorf("genai returned %d: %s", resp.StatusCode, string(respBody)))
		}

		var out generateResponse
		if err := json.Unmarshal(respBody, &out); err != nil {
			return nil, stderrors.NewConsultFailedError(err)
		}
		return &out, nil
	}

	return nil, stderrors.NewConsultFailedError(lastErr)
}
