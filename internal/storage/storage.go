package storage

import (
	"context"
	"errors"

	"tasknotes/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrSessionNotFound   = errors.New("session not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrNoteNotFound      = errors.New("note not found")
)

// UpdateTaskParams carries a partial task update. Nil fields are left as is.
type UpdateTaskParams struct {
	Description *string
	Status      *string
	Priority    *string
}

// Store is the single seam between the services and the record store.
// Every task and note operation is scoped by the owning user id; a row
// belonging to another owner behaves exactly like a missing row.
type Store interface {
	// EnsureSchema creates the tables if they are absent. Calling it
	// again against an initialized store is a no-op.
	EnsureSchema(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ReplaceUserSessions atomically deletes every session of
	// session.UserID and inserts the given one, so a successful login
	// leaves exactly one active session for the identity.
	ReplaceUserSessions(ctx context.Context, session *models.Session) error
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
	GetSessionByRefreshToken(ctx context.Context, refreshToken, fingerprint string) (*models.Session, error)
	UpdateSession(ctx context.Context, session *models.Session) error
	DeleteUserSessions(ctx context.Context, userID string) error

	ListTasks(ctx context.Context, owner string) ([]models.Task, error)
	// CreateTask inserts the task and fills in its generated id.
	CreateTask(ctx context.Context, task *models.Task) error
	UpdateTask(ctx context.Context, owner string, id int64, params UpdateTaskParams) (*models.Task, error)
	DeleteTask(ctx context.Context, owner string, id int64) error

	ListNotes(ctx context.Context, owner string) ([]models.Note, error)
	// CreateNote inserts the note and fills in its generated id.
	CreateNote(ctx context.Context, note *models.Note) error
	DeleteNote(ctx context.Context, owner string, id int64) error
}
