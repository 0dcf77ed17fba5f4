package postgres

import (
	"context"

	"tasknotes/internal/models"
	"tasknotes/internal/storage"
)

func (s *Store) ListNotes(ctx context.Context, owner string) ([]models.Note, error) {
	const selectNotesByOwnerQuery = `
SELECT id,
       body,
       created_at
FROM notes
WHERE owner = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := s.pool.Query(
		ctx,
		selectNotesByOwnerQuery,
		owner,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("owner", owner).
			Msg("failed to select notes by owner")
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 16)
	for rows.Next() {
		note := models.Note{Owner: owner}
		err = rows.Scan(
			&note.ID,
			&note.Body,
			&note.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan note")
			return nil, err
		}
		notes = append(notes, note)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(notes)).
		Str("owner", owner).
		Msg("selected notes by owner")
	return notes, nil
}

func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	const insertNoteQuery = `
INSERT INTO notes (owner,
                   body,
                   created_at)
VALUES ($1, $2, $3)
RETURNING id
`
	err := s.pool.QueryRow(
		ctx,
		insertNoteQuery,
		note.Owner,
		note.Body,
		note.CreatedAt,
	).Scan(&note.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert note")
		return err
	}

	s.logger.Debug().
		Int64("note_id", note.ID).
		Str("owner", note.Owner).
		Msg("inserted note")
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, owner string, id int64) error {
	const deleteNoteQuery = `
DELETE FROM notes
WHERE id = $1 AND owner = $2
`
	tag, err := s.pool.Exec(
		ctx,
		deleteNoteQuery,
		id,
		owner,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("note_id", id).
			Msg("failed to delete note")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Int64("note_id", id).
			Str("owner", owner).
			Msg("note not found")
		return storage.ErrNoteNotFound
	}

	s.logger.Debug().
		Int64("note_id", id).
		Str("owner", owner).
		Msg("deleted note")
	return nil
}
