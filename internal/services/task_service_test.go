package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tasknotes/internal/cache"
	"tasknotes/internal/models"
	"tasknotes/internal/storage/memory"
)

func newTaskService(t *testing.T) TaskService {
	t.Helper()
	return NewTaskService(zerolog.Nop(), memory.New(), cache.NewMemory(), time.Minute)
}

func TestCreateTaskListRoundTrip(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", "  write report  ", models.PriorityHigh)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.Status != models.StatusToDo {
		t.Fatalf("expected status %q, got %q", models.StatusToDo, created.Status)
	}
	if created.Description != "write report" {
		t.Fatalf("expected trimmed description, got %q", created.Description)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected non-zero creation time")
	}

	tasks, err := svc.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].ID != created.ID ||
		tasks[0].Description != "write report" ||
		tasks[0].Priority != models.PriorityHigh ||
		tasks[0].Status != models.StatusToDo {
		t.Fatalf("unexpected task: %+v", tasks[0])
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		owner       string
		description string
		priority    string
		wantErr     error
	}{
		{"empty description", "alice", "   ", models.PriorityLow, ErrEmptyTaskDescription},
		{"unknown priority", "alice", "task", "urgent", ErrInvalidTaskPriority},
		{"missing owner", "", "task", models.PriorityLow, ErrMissingOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, tt.owner, tt.description, tt.priority)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestListTasksOwnershipIsolation(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, "alice", "alice's task", models.PriorityLow); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := svc.CreateTask(ctx, "bob", "bob's task", models.PriorityHigh); err != nil {
		t.Fatalf("create task: %v", err)
	}

	tasks, err := svc.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Description != "alice's task" {
		t.Fatalf("expected alice's task, got %q", tasks[0].Description)
	}
}

func TestUpdateTaskRoundTrip(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", "task", models.PriorityMedium)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	done := models.StatusDone
	updated, err := svc.UpdateTask(ctx, "alice", created.ID, UpdateTaskParams{Status: &done})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Status != models.StatusDone {
		t.Fatalf("expected status done, got %q", updated.Status)
	}
	if updated.Priority != models.PriorityMedium {
		t.Fatalf("expected untouched priority, got %q", updated.Priority)
	}

	tasks, err := svc.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != models.StatusDone {
		t.Fatalf("expected the row with status done, got %+v", tasks)
	}

	bogus := "archived"
	if _, err := svc.UpdateTask(ctx, "alice", created.ID, UpdateTaskParams{Status: &bogus}); !errors.Is(err, ErrInvalidTaskStatus) {
		t.Fatalf("expected ErrInvalidTaskStatus, got %v", err)
	}

	if _, err := svc.UpdateTask(ctx, "alice", created.ID+100, UpdateTaskParams{Status: &done}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	// Another owner must not be able to touch the row.
	if _, err := svc.UpdateTask(ctx, "bob", created.ID, UpdateTaskParams{Status: &done}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for foreign owner, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", "task", models.PriorityLow)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := svc.DeleteTask(ctx, "alice", created.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}

	tasks, err := svc.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}

	if err := svc.DeleteTask(ctx, "alice", created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	svc := newTaskService(t)
	ctx := context.Background()

	fixture := []struct {
		description string
		priority    string
		status      string
	}{
		{"first", models.PriorityHigh, models.StatusToDo},
		{"second", models.PriorityMedium, models.StatusToDo},
		{"third", models.PriorityLow, models.StatusInProgress},
		{"fourth", models.PriorityHigh, models.StatusDone},
	}
	for _, f := range fixture {
		created, err := svc.CreateTask(ctx, "alice", f.description, f.priority)
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
		if f.status != models.StatusToDo {
			status := f.status
			if _, err := svc.UpdateTask(ctx, "alice", created.ID, UpdateTaskParams{Status: &status}); err != nil {
				t.Fatalf("update task: %v", err)
			}
		}
	}

	stats, err := svc.Stats(ctx, "alice")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 4 {
		t.Fatalf("expected total 4, got %d", stats.Total)
	}
	if pending := stats.ToDo + stats.InProgress; pending != 3 {
		t.Fatalf("expected 3 pending tasks, got %d", pending)
	}
	if stats.Done != 1 {
		t.Fatalf("expected 1 done task, got %d", stats.Done)
	}
	if stats.PercentComplete != 25 {
		t.Fatalf("expected 25%% complete, got %v", stats.PercentComplete)
	}

	// The histogram covers active tasks only; the done high-priority
	// task must not be counted.
	if stats.PriorityCounts[models.PriorityHigh] != 1 ||
		stats.PriorityCounts[models.PriorityMedium] != 1 ||
		stats.PriorityCounts[models.PriorityLow] != 1 {
		t.Fatalf("unexpected priority counts: %v", stats.PriorityCounts)
	}
}

func TestStatsEmpty(t *testing.T) {
	svc := newTaskService(t)

	stats, err := svc.Stats(context.Background(), "alice")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 0 || stats.PercentComplete != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestListTasksReadAfterWrite(t *testing.T) {
	// The cache TTL is far longer than the test, so a stale entry
	// would only disappear through write-triggered invalidation.
	svc := newTaskService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "alice", "task", models.PriorityLow)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := svc.ListTasks(ctx, "alice"); err != nil {
		t.Fatalf("list tasks: %v", err)
	}

	done := models.StatusDone
	if _, err := svc.UpdateTask(ctx, "alice", created.ID, UpdateTaskParams{Status: &done}); err != nil {
		t.Fatalf("update task: %v", err)
	}

	tasks, err := svc.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != models.StatusDone {
		t.Fatalf("expected the update to be visible immediately, got %+v", tasks)
	}

	if err := svc.DeleteTask(ctx, "alice", created.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	tasks, err = svc.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected the delete to be visible immediately, got %+v", tasks)
	}
}
