package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tasknotes/internal/models"
	"tasknotes/internal/services"
)

type noteResponse struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func newNoteResponse(note *models.Note) noteResponse {
	return noteResponse{
		ID:        note.ID,
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
	}
}

type createNoteRequest struct {
	Body string `json:"body" binding:"required,max=4096"`
}

func (h *handlerImpl) HandleCreateNote(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		h.logger.Error().Msg("no owner found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req createNoteRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	note, err := h.notes.CreateNote(c, owner, req.Body)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create note")
		switch {
		case errors.Is(err, services.ErrEmptyNoteBody):
			abort(c, newBadRequestError(services.ErrEmptyNoteBody.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, newNoteResponse(note))
}

func (h *handlerImpl) HandleGetNotes(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		h.logger.Error().Msg("no owner found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	notes, err := h.notes.ListNotes(c, owner)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list notes")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]noteResponse, len(notes))
	for i := range notes {
		response[i] = newNoteResponse(&notes[i])
	}

	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleDeleteNote(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		h.logger.Error().Msg("no owner found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	noteID, ok := parseIDParam(c)
	if !ok {
		h.logger.Error().Msg("invalid note id")
		abort(c, newBadRequestError("invalid note id"))
		return
	}

	err := h.notes.DeleteNote(c, owner, noteID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("note_id", noteID).
			Msg("failed to delete note")
		switch {
		case errors.Is(err, services.ErrNoteNotFound):
			abort(c, newNotFoundError(services.ErrNoteNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.Status(http.StatusNoContent)
}
