package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tasknotes/internal/models"
	"tasknotes/internal/storage"
)

func (s *Store) ListTasks(ctx context.Context, owner string) ([]models.Task, error) {
	const selectTasksByOwnerQuery = `
SELECT id,
       description,
       status,
       priority,
       created_at
FROM tasks
WHERE owner = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := s.pool.Query(
		ctx,
		selectTasksByOwnerQuery,
		owner,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("owner", owner).
			Msg("failed to select tasks by owner")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, 16)
	for rows.Next() {
		task := models.Task{Owner: owner}
		err = rows.Scan(
			&task.ID,
			&task.Description,
			&task.Status,
			&task.Priority,
			&task.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("owner", owner).
		Msg("selected tasks by owner")
	return tasks, nil
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (owner,
                   description,
                   status,
                   priority,
                   created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	err := s.pool.QueryRow(
		ctx,
		insertTaskQuery,
		task.Owner,
		task.Description,
		task.Status,
		task.Priority,
		task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return err
	}

	s.logger.Debug().
		Int64("task_id", task.ID).
		Str("owner", task.Owner).
		Msg("inserted task")
	return nil
}

func (s *Store) UpdateTask(ctx context.Context, owner string, id int64, params storage.UpdateTaskParams) (*models.Task, error) {
	task := &models.Task{
		ID:    id,
		Owner: owner,
	}

	const updateTaskQuery = `
UPDATE tasks
SET description = COALESCE($1, description),
    status = COALESCE($2, status),
    priority = COALESCE($3, priority)
WHERE id = $4 AND owner = $5
RETURNING description, status, priority, created_at
`
	err := s.pool.QueryRow(
		ctx,
		updateTaskQuery,
		params.Description,
		params.Status,
		params.Priority,
		task.ID,
		task.Owner,
	).Scan(
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("task_id", task.ID).
				Str("owner", task.Owner).
				Msg("task not found")
			return nil, storage.ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *Store) DeleteTask(ctx context.Context, owner string, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND owner = $2
`
	tag, err := s.pool.Exec(
		ctx,
		deleteTaskQuery,
		id,
		owner,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Int64("task_id", id).
			Str("owner", owner).
			Msg("task not found")
		return storage.ErrTaskNotFound
	}

	s.logger.Debug().
		Int64("task_id", id).
		Str("owner", owner).
		Msg("deleted task")
	return nil
}
