package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tasknotes/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrCaptchaMismatch      = errors.New("wrong or expired captcha answer")

	ErrMissingOwner         = errors.New("missing owner")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNoteNotFound         = errors.New("note not found")
	ErrEmptyTaskDescription = errors.New("task description must not be empty")
	ErrEmptyNoteBody        = errors.New("note body must not be empty")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
)

type AuthService interface {
	// Login authenticates the user by username and password after the
	// captcha challenge is verified.
	//
	// It deletes all sessions with the same user ID and creates a new
	// session with a fresh JWT token pair, so at most one session per
	// identity stays active.
	//
	// It returns ErrCaptchaMismatch if the challenge fails,
	// ErrUserNotFound if the user with the given username doesn't
	// exist or ErrUserPasswordMismatch if the given password doesn't
	// match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the given
	// refresh token doesn't exist or ErrSessionExpired if the session
	// is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a user with the given username and password.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with the given fingerprint and a fresh JWT token pair.
	//
	// It returns ErrUserAlreadyExists if the user with the given
	// username already exists.
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)

	// ParseToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseToken(token string) (*jwt.RegisteredClaims, error)
}

// CaptchaService issues single-use arithmetic challenges for the login form.
type CaptchaService interface {
	Issue(ctx context.Context) (*CaptchaChallenge, error)
	// Verify consumes the challenge regardless of the outcome and
	// returns ErrCaptchaMismatch on a wrong, reused or expired answer.
	Verify(ctx context.Context, id, answer string) error
}

type TaskService interface {
	// CreateTask stores a new task with status "todo" and the creation
	// time set to now.
	CreateTask(ctx context.Context, owner, description, priority string) (*models.Task, error)
	ListTasks(ctx context.Context, owner string) ([]models.Task, error)
	// UpdateTask applies a partial update and returns ErrTaskNotFound
	// when no row matches owner and id.
	UpdateTask(ctx context.Context, owner string, id int64, params UpdateTaskParams) (*models.Task, error)
	DeleteTask(ctx context.Context, owner string, id int64) error
	// Stats derives the statistics view from the owner's tasks.
	Stats(ctx context.Context, owner string) (*models.TaskStats, error)
}

type NoteService interface {
	CreateNote(ctx context.Context, owner, body string) (*models.Note, error)
	// ListNotes returns the owner's notes ordered by creation time
	// descending.
	ListNotes(ctx context.Context, owner string) ([]models.Note, error)
	DeleteNote(ctx context.Context, owner string, id int64) error
}

type LoginParams struct {
	Username      string
	Password      string
	Fingerprint   string
	CaptchaID     string
	CaptchaAnswer string
}

type RegisterParams struct {
	Username    string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type CaptchaChallenge struct {
	ID       string
	Question string
}

type UpdateTaskParams struct {
	Description *string
	Status      *string
	Priority    *string
}
