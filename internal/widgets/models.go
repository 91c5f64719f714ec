// Package widgets stores the per-officer dashboard widgets: todos, schedules
// and the cached news list. Loads are lenient, saves are best-effort.
package widgets

// TodoItem is one entry of the officer's todo widget.
type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ScheduleItem is one entry of the calendar widget. Date is ISO-8601
// (YYYY-MM-DD).
type ScheduleItem struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Title string `json:"title"`
}

// NewsItem is one cached news summary line.
type NewsItem struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}
