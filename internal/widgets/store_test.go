package widgets

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loandesk/internal/common/database"
	"loandesk/internal/common/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewStore(&database.RedisClient{Client: client}, logger.NewNoOpLogger())
	return store, mr
}

func TestTodosRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	items := []TodoItem{
		{ID: "1", Text: "서류 확인", Completed: false},
		{ID: "2", Text: "등기부 열람", Completed: true},
	}
	store.SaveTodos(ctx, "officer-1", items)

	got := store.Todos(ctx, "officer-1")
	assert.Equal(t, items, got)
}

func TestEmptyFallbacks(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("absent key yields empty list", func(t *testing.T) {
		assert.Empty(t, store.Todos(ctx, "nobody"))
		assert.Empty(t, store.Schedules(ctx, "nobody"))
		assert.Empty(t, store.News(ctx, "nobody"))
	})
}

func TestCorruptPayloadFallsBack(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("widgets:v6:officer-1:todos", "{not json"))
	assert.Empty(t, store.Todos(ctx, "officer-1"))
}

func TestSchemaInvalidPayloadFallsBack(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// Valid JSON, wrong shape: items missing required fields.
	require.NoError(t, mr.Set("widgets:v6:officer-1:schedules", `[{"id": "1"}]`))
	assert.Empty(t, store.Schedules(ctx, "officer-1"))
}

func TestSaveIsBestEffort(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	mr.Close()

	// Must not panic or surface an error path to the caller.
	store.SaveTodos(ctx, "officer-1", []TodoItem{{ID: "1", Text: "x"}})
	assert.Empty(t, store.Todos(ctx, "officer-1"))
}

func TestKeysAreIndependentPerWidgetAndSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.SaveTodos(ctx, "officer-1", []TodoItem{{ID: "1", Text: "a"}})
	store.SaveSchedules(ctx, "officer-1", []ScheduleItem{{ID: "1", Date: "2026-09-01", Title: "감정평가"}})

	assert.Len(t, store.Todos(ctx, "officer-1"), 1)
	assert.Len(t, store.Schedules(ctx, "officer-1"), 1)
	assert.Empty(t, store.News(ctx, "officer-1"))
	assert.Empty(t, store.Todos(ctx, "officer-2"))
}

func TestNilSaveNormalizesToEmptyList(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.SaveNews(ctx, "officer-1", nil)
	got := store.News(ctx, "officer-1")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAllScheduleOwners(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.SaveSchedules(ctx, "officer-1", []ScheduleItem{{ID: "1", Date: "2026-09-01", Title: "a"}})
	store.SaveSchedules(ctx, "officer-2", []ScheduleItem{{ID: "2", Date: "2026-09-02", Title: "b"}})
	store.SaveTodos(ctx, "officer-3", []TodoItem{{ID: "3", Text: "c"}})

	owners, err := store.AllScheduleOwners(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"officer-1", "officer-2"}, owners)
}
