package models

import "time"

const (
	StatusToDo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidStatus reports whether s belongs to the closed status enumeration.
func ValidStatus(s string) bool {
	return s == StatusToDo || s == StatusInProgress || s == StatusDone
}

// ValidPriority reports whether p belongs to the closed priority enumeration.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

type Task struct {
	ID          int64
	Owner       string
	Description string
	Status      string
	Priority    string
	CreatedAt   time.Time
}

// TaskStats is a derived view over a user's tasks.
//
// PriorityCounts is computed over active (non-done) tasks only.
type TaskStats struct {
	Total           int
	ToDo            int
	InProgress      int
	Done            int
	PercentComplete float64
	PriorityCounts  map[string]int
}
