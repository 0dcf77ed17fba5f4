// Package memory implements storage.Store with plain maps. It backs the
// service tests and local runs without a Postgres instance.
package memory

import (
	"context"
	"sort"
	"sync"

	"tasknotes/internal/models"
	"tasknotes/internal/storage"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User    // keyed by username
	sessions map[string]models.Session // keyed by session id
	tasks    map[int64]models.Task
	notes    map[int64]models.Note
	nextTask int64
	nextNote int64
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		sessions: make(map[string]models.Session),
		tasks:    make(map[int64]models.Task),
		notes:    make(map[int64]models.Note),
	}
}

func (s *Store) EnsureSchema(context.Context) error {
	return nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	s.users[user.Username] = *user
	return nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[username]
	if !exists {
		return nil, storage.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) ReplaceUserSessions(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.sessions {
		if existing.UserID == session.UserID {
			delete(s.sessions, id)
		}
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *Store) GetSessionByID(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, storage.ErrSessionNotFound
	}
	return &session, nil
}

func (s *Store) GetSessionByRefreshToken(_ context.Context, refreshToken, fingerprint string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, session := range s.sessions {
		if session.RefreshToken == refreshToken && session.Fingerprint == fingerprint {
			return &session, nil
		}
	}
	return nil, storage.ErrSessionNotFound
}

func (s *Store) UpdateSession(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; !exists {
		return storage.ErrSessionNotFound
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *Store) DeleteUserSessions(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *Store) ListTasks(_ context.Context, owner string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, 16)
	for _, task := range s.tasks {
		if task.Owner == owner {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (s *Store) CreateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTask++
	task.ID = s.nextTask
	s.tasks[task.ID] = *task
	return nil
}

func (s *Store) UpdateTask(_ context.Context, owner string, id int64, params storage.UpdateTaskParams) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[id]
	if !exists || task.Owner != owner {
		return nil, storage.ErrTaskNotFound
	}

	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	s.tasks[id] = task
	return &task, nil
}

func (s *Store) DeleteTask(_ context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[id]
	if !exists || task.Owner != owner {
		return storage.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *Store) ListNotes(_ context.Context, owner string) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]models.Note, 0, 16)
	for _, note := range s.notes {
		if note.Owner == owner {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].ID > notes[j].ID
	})
	return notes, nil
}

func (s *Store) CreateNote(_ context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNote++
	note.ID = s.nextNote
	s.notes[note.ID] = *note
	return nil
}

func (s *Store) DeleteNote(_ context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, exists := s.notes[id]
	if !exists || note.Owner != owner {
		return storage.ErrNoteNotFound
	}
	delete(s.notes, id)
	return nil
}
