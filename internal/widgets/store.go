package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"loandesk/internal/common/database"
	"loandesk/internal/common/logger"
	"loandesk/internal/common/metrics"
	"loandesk/internal/common/validation"
)

// keyVersion namespaces the stored payloads; bumping it orphans old data
// instead of migrating it.
const keyVersion = "v6"

// Store persists widget payloads in Redis, three independent keys per
// officer. Corrupt or schema-invalid payloads fall back to the empty default
// without surfacing an error.
type Store struct {
	redis *database.RedisClient
	log   logger.Logger
}

func NewStore(redis *database.RedisClient, log logger.Logger) *Store {
	return &Store{redis: redis, log: log}
}

func widgetKey(sessionID, widget string) string {
	return fmt.Sprintf("widgets:%s:%s:%s", keyVersion, sessionID, widget)
}

// load fetches and schema-checks one widget payload, writing into dest.
// Every failure mode degrades to leaving dest untouched (the empty default).
func (s *Store) load(ctx context.Context, sessionID, widget string, dest interface{}) {
	raw, err := s.redis.Get(ctx, widgetKey(sessionID, widget))
	if err == redis.Nil {
		return
	}
	if err != nil {
		metrics.WidgetStoreFallbacks.WithLabelValues(widget).Inc()
		s.log.WithError(err).Warn("widget load failed, using empty fallback", map[string]interface{}{
			"session_id": sessionID,
			"widget":     widget,
		})
		return
	}

	if err := validation.ValidateWidgetPayload(widget, raw); err != nil {
		metrics.WidgetStoreFallbacks.WithLabelValues(widget).Inc()
		s.log.WithError(err).Warn("stored widget payload invalid, using empty fallback", map[string]interface{}{
			"session_id": sessionID,
			"widget":     widget,
		})
		return
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		metrics.WidgetStoreFallbacks.WithLabelValues(widget).Inc()
		s.log.WithError(err).Warn("stored widget payload corrupt, using empty fallback", map[string]interface{}{
			"session_id": sessionID,
			"widget":     widget,
		})
	}
}

// save writes one widget payload. Best-effort: failures are logged, never
// returned.
func (s *Store) save(ctx context.Context, sessionID, widget string, value interface{}) {
	doc, err := json.Marshal(value)
	if err != nil {
		s.log.WithError(err).Warn("widget save skipped, marshal failed", map[string]interface{}{
			"session_id": sessionID,
			"widget":     widget,
		})
		return
	}

	if err := s.redis.Set(ctx, widgetKey(sessionID, widget), string(doc), 0); err != nil {
		s.log.WithError(err).Warn("widget save failed", map[string]interface{}{
			"session_id": sessionID,
			"widget":     widget,
		})
	}
}

// Todos returns the stored todo list, or empty on any failure.
func (s *Store) Todos(ctx context.Context, sessionID string) []TodoItem {
	items := []TodoItem{}
	s.load(ctx, sessionID, "todos", &items)
	return items
}

// SaveTodos stores the todo list, best-effort.
func (s *Store) SaveTodos(ctx context.Context, sessionID string, items []TodoItem) {
	if items == nil {
		items = []TodoItem{}
	}
	s.save(ctx, sessionID, "todos", items)
}

// Schedules returns the stored schedule list, or empty on any failure.
func (s *Store) Schedules(ctx context.Context, sessionID string) []ScheduleItem {
	items := []ScheduleItem{}
	s.load(ctx, sessionID, "schedules", &items)
	return items
}

// SaveSchedules stores the schedule list, best-effort.
func (s *Store) SaveSchedules(ctx context.Context, sessionID string, items []ScheduleItem) {
	if items == nil {
		items = []ScheduleItem{}
	}
	s.save(ctx, sessionID, "schedules", items)
}

// News returns the cached news list, or empty on any failure.
func (s *Store) News(ctx context.Context, sessionID string) []NewsItem {
	items := []NewsItem{}
	s.load(ctx, sessionID, "news", &items)
	return items
}

// SaveNews stores the news cache, best-effort.
func (s *Store) SaveNews(ctx context.Context, sessionID string, items []NewsItem) {
	if items == nil {
		items = []NewsItem{}
	}
	s.save(ctx, sessionID, "news", items)
}

// AllScheduleOwners returns the session ids that currently have a schedule
// payload stored. Used by the reminder dispatcher.
func (s *Store) AllScheduleOwners(ctx context.Context) ([]string, error) {
	pattern := fmt.Sprintf("widgets:%s:*:schedules", keyVersion)

	prefix := fmt.Sprintf("widgets:%s:", keyVersion)

	var owners []string
	iter := s.redis.GetClient().Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		sid := strings.TrimSuffix(strings.TrimPrefix(iter.Val(), prefix), ":schedules")
		if sid != "" {
			owners = append(owners, sid)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("schedule owner scan failed: %w", err)
	}
	return owners, nil
}
