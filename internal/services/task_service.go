package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tasknotes/internal/cache"
	"tasknotes/internal/models"
	"tasknotes/internal/storage"
)

type taskServiceImpl struct {
	logger   zerolog.Logger
	store    storage.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewTaskService(
	logger zerolog.Logger,
	store storage.Store,
	c cache.Cache,
	cacheTTL time.Duration,
) TaskService {
	return &taskServiceImpl{
		logger:   logger,
		store:    store,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, owner, description, priority string) (*models.Task, error) {
	if owner == "" {
		return nil, ErrMissingOwner
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyTaskDescription
	}
	if !models.ValidPriority(priority) {
		s.logger.Error().
			Str("priority", priority).
			Msg("invalid task priority")
		return nil, ErrInvalidTaskPriority
	}

	task := &models.Task{
		Owner:       owner,
		Description: description,
		Status:      models.StatusToDo,
		Priority:    priority,
		CreatedAt:   time.Now(),
	}

	err := s.store.CreateTask(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create task")
		return nil, err
	}
	s.cache.Delete(ctx, cache.TasksKey(owner))

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("owner", owner).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, owner string) ([]models.Task, error) {
	if owner == "" {
		return nil, ErrMissingOwner
	}

	key := cache.TasksKey(owner)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var tasks []models.Task
		if err := json.Unmarshal(cached, &tasks); err == nil {
			s.logger.Debug().
				Int("count", len(tasks)).
				Str("owner", owner).
				Msg("listed tasks from cache")
			return tasks, nil
		}
		// A corrupt entry behaves like a miss.
		s.cache.Delete(ctx, key)
	}

	tasks, err := s.store.ListTasks(ctx, owner)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("owner", owner).
			Msg("failed to list tasks")
		return nil, err
	}

	if encoded, err := json.Marshal(tasks); err == nil {
		s.cache.Set(ctx, key, encoded, s.cacheTTL)
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("owner", owner).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, owner string, id int64, params UpdateTaskParams) (*models.Task, error) {
	if owner == "" {
		return nil, ErrMissingOwner
	}

	if params.Description != nil {
		trimmed := strings.TrimSpace(*params.Description)
		if trimmed == "" {
			return nil, ErrEmptyTaskDescription
		}
		params.Description = &trimmed
	}
	if params.Status != nil && !models.ValidStatus(*params.Status) {
		s.logger.Error().
			Str("status", *params.Status).
			Msg("invalid task status")
		return nil, ErrInvalidTaskStatus
	}
	if params.Priority != nil && !models.ValidPriority(*params.Priority) {
		s.logger.Error().
			Str("priority", *params.Priority).
			Msg("invalid task priority")
		return nil, ErrInvalidTaskPriority
	}

	task, err := s.store.UpdateTask(ctx, owner, id, storage.UpdateTaskParams{
		Description: params.Description,
		Status:      params.Status,
		Priority:    params.Priority,
	})
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task")
		return nil, err
	}
	s.cache.Delete(ctx, cache.TasksKey(owner))

	s.logger.Info().
		Int64("task_id", id).
		Str("owner", owner).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, owner string, id int64) error {
	if owner == "" {
		return ErrMissingOwner
	}

	err := s.store.DeleteTask(ctx, owner, id)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	s.cache.Delete(ctx, cache.TasksKey(owner))

	s.logger.Info().
		Int64("task_id", id).
		Str("owner", owner).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) Stats(ctx context.Context, owner string) (*models.TaskStats, error) {
	tasks, err := s.ListTasks(ctx, owner)
	if err != nil {
		return nil, err
	}

	stats := &models.TaskStats{
		Total:          len(tasks),
		PriorityCounts: make(map[string]int),
	}
	for _, task := range tasks {
		switch task.Status {
		case models.StatusToDo:
			stats.ToDo++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusDone:
			stats.Done++
		}

		// The priority breakdown covers active tasks only.
		if task.Status != models.StatusDone {
			stats.PriorityCounts[task.Priority]++
		}
	}
	if stats.Total > 0 {
		stats.PercentComplete = float64(stats.Done) / float64(stats.Total) * 100
	}

	s.logger.Debug().
		Int("total", stats.Total).
		Int("done", stats.Done).
		Str("owner", owner).
		Msg("derived task stats")
	return stats, nil
}
