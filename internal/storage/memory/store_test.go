package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasknotes/internal/models"
	"tasknotes/internal/storage"
)

func TestEnsureSchemaIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
}

func TestTaskOwnershipScoping(t *testing.T) {
	s := New()
	ctx := context.Background()

	task := &models.Task{
		Owner:       "alice",
		Description: "task",
		Status:      models.StatusToDo,
		Priority:    models.PriorityLow,
		CreatedAt:   time.Now(),
	}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.ID == 0 {
		t.Fatal("expected a generated id")
	}

	bobTasks, err := s.ListTasks(ctx, "bob")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(bobTasks) != 0 {
		t.Fatalf("expected no tasks for bob, got %d", len(bobTasks))
	}

	done := models.StatusDone
	if _, err := s.UpdateTask(ctx, "bob", task.ID, storage.UpdateTaskParams{Status: &done}); !errors.Is(err, storage.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for foreign owner, got %v", err)
	}
	if err := s.DeleteTask(ctx, "bob", task.ID); !errors.Is(err, storage.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for foreign owner, got %v", err)
	}
}

func TestReplaceUserSessions(t *testing.T) {
	s := New()
	ctx := context.Background()

	now := time.Now()
	first := &models.Session{
		ID:           "session-1",
		UserID:       "alice",
		Fingerprint:  "fp",
		RefreshToken: "token-1",
		ExpiresAt:    now.Add(time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.ReplaceUserSessions(ctx, first); err != nil {
		t.Fatalf("replace sessions: %v", err)
	}

	second := *first
	second.ID = "session-2"
	second.RefreshToken = "token-2"
	if err := s.ReplaceUserSessions(ctx, &second); err != nil {
		t.Fatalf("replace sessions: %v", err)
	}

	if _, err := s.GetSessionByID(ctx, "session-1"); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Fatalf("expected the first session to be gone, got %v", err)
	}
	if _, err := s.GetSessionByID(ctx, "session-2"); err != nil {
		t.Fatalf("expected the second session to exist, got %v", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s := New()
	ctx := context.Background()

	user := &models.User{ID: "id-1", Username: "alice", Password: "hash"}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	dup := &models.User{ID: "id-2", Username: "alice", Password: "hash"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, storage.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}
