package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"loandesk/internal/widgets"
)

const newsPrompt = `최근 7일간의 '부동산 대출 규제', 'LTV DSR 정책', '농협 여신 관련 뉴스' 5개를 제목과 짧은 요약(3줄 이내)으로 정리해줘. 가독성을 위해 불필요한 특수문자는 제거해.`

const newsFallbackText = "뉴스를 불러오지 못했습니다."

// FetchLatestNews returns the raw news summary text from the model.
func (c *Client) FetchLatestNews(ctx context.Context) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []contentPart{{Text: newsPrompt}}}},
		Tools:    []tool{{}},
	}

	resp, err := c.generate(ctx, c.cfg.GenAI.NewsModel, req)
	if err != nil {
		return "", err
	}

	text := resp.text()
	if text == "" {
		return newsFallbackText, nil
	}
	return text, nil
}

// ParseNewsItems turns raw summary text into ordered news items: one item
// per line, short lines dropped, markdown noise stripped. Any input yields a
// (possibly empty) list, never an error.
func ParseNewsItems(raw string) []widgets.NewsItem {
	now := time.Now()
	items := []widgets.NewsItem{}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if utf8.RuneCountInString(trimmed) <= 5 {
			continue
		}

		cleaned := strings.NewReplacer("#", "", "*", "").Replace(trimmed)
		items = append(items, widgets.NewsItem{
			ID:        fmt.Sprintf("news-%d-%d", now.UnixMilli(), len(items)),
			Content:   strings.TrimSpace(cleaned),
			Timestamp: now.UnixMilli(),
		})
	}

	return items
}
