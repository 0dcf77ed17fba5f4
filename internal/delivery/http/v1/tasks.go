package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tasknotes/internal/models"
	"tasknotes/internal/services"
)

type taskResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
	}
}

type createTaskRequest struct {
	Description string `json:"description" binding:"required,max=1024"`
	Priority    string `json:"priority" binding:"required"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		h.logger.Error().Msg("no owner found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, owner, req.Description, req.Priority)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		switch {
		case errors.Is(err, services.ErrEmptyTaskDescription):
			abort(c, newBadRequestError(services.ErrEmptyTaskDescription.Error()))
		case errors.Is(err, services.ErrInvalidTaskPriority):
			abort(c, newBadRequestError(services.ErrInvalidTaskPriority.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		h.logger.Error().Msg("no owner found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tasks, err := h.tasks.ListTasks(c, owner)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, len(tasks))
	for i := range tasks {
		response[i] = newTaskResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, response)
}

type taskStatsResponse struct {
	Total           int            `json:"total"`
	ToDo            int            `json:"todo"`
	InProgress      int            `json:"in_progress"`
	Done            int            `json:"done"`
	PercentComplete float64        `json:"percent_complete"`
	PriorityCounts  map[string]int `json:"priority_counts"`
}

func (h *handlerImpl) HandleGetTaskStats(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		h.logger.Error().Msg("no owner found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	stats, err := h.tasks.Stats(c, owner)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to derive task stats")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, taskStatsResponse{
		Total:           stats.Total,
		ToDo:            stats.ToDo,
		InProgress:      stats.InProgress,
		Done:            stats.Done,
		PercentComplete: stats.PercentComplete,
		PriorityCounts:  stats.PriorityCounts,
	})
}

type updateTaskRequest struct {
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		h.logger.Error().Msg("no owner found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		h.logger.Error().Msg("invalid task id")
		abort(c, newBadRequestError("invalid task id"))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, owner, taskID, services.UpdateTaskParams{
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrEmptyTaskDescription):
			abort(c, newBadRequestError(services.ErrEmptyTaskDescription.Error()))
		case errors.Is(err, services.ErrInvalidTaskStatus):
			abort(c, newBadRequestError(services.ErrInvalidTaskStatus.Error()))
		case errors.Is(err, services.ErrInvalidTaskPriority):
			abort(c, newBadRequestError(services.ErrInvalidTaskPriority.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		h.logger.Error().Msg("no owner found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		h.logger.Error().Msg("invalid task id")
		abort(c, newBadRequestError("invalid task id"))
		return
	}

	err := h.tasks.DeleteTask(c, owner, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
