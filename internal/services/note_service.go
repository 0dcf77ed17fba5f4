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

type noteServiceImpl struct {
	logger   zerolog.Logger
	store    storage.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewNoteService(
	logger zerolog.Logger,
	store storage.Store,
	c cache.Cache,
	cacheTTL time.Duration,
) NoteService {
	return &noteServiceImpl{
		logger:   logger,
		store:    store,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (s *noteServiceImpl) CreateNote(ctx context.Context, owner, body string) (*models.Note, error) {
	if owner == "" {
		return nil, ErrMissingOwner
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyNoteBody
	}

	note := &models.Note{
		Owner:     owner,
		Body:      body,
		CreatedAt: time.Now(),
	}

	err := s.store.CreateNote(ctx, note)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create note")
		return nil, err
	}
	s.cache.Delete(ctx, cache.NotesKey(owner))

	s.logger.Info().
		Int64("note_id", note.ID).
		Str("owner", owner).
		Msg("created note")
	return note, nil
}

func (s *noteServiceImpl) ListNotes(ctx context.Context, owner string) ([]models.Note, error) {
	if owner == "" {
		return nil, ErrMissingOwner
	}

	key := cache.NotesKey(owner)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var notes []models.Note
		if err := json.Unmarshal(cached, &notes); err == nil {
			s.logger.Debug().
				Int("count", len(notes)).
				Str("owner", owner).
				Msg("listed notes from cache")
			return notes, nil
		}
		s.cache.Delete(ctx, key)
	}

	notes, err := s.store.ListNotes(ctx, owner)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("owner", owner).
			Msg("failed to list notes")
		return nil, err
	}

	if encoded, err := json.Marshal(notes); err == nil {
		s.cache.Set(ctx, key, encoded, s.cacheTTL)
	}

	s.logger.Debug().
		Int("count", len(notes)).
		Str("owner", owner).
		Msg("listed notes")
	return notes, nil
}

func (s *noteServiceImpl) DeleteNote(ctx context.Context, owner string, id int64) error {
	if owner == "" {
		return ErrMissingOwner
	}

	err := s.store.DeleteNote(ctx, owner, id)
	if err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			return ErrNoteNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("note_id", id).
			Msg("failed to delete note")
		return err
	}
	s.cache.Delete(ctx, cache.NotesKey(owner))

	s.logger.Info().
		Int64("note_id", id).
		Str("owner", owner).
		Msg("deleted note")
	return nil
}
