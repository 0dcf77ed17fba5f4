package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tasknotes/internal/cache"
	"tasknotes/internal/storage/memory"
)

func newNoteService(t *testing.T) NoteService {
	t.Helper()
	return NewNoteService(zerolog.Nop(), memory.New(), cache.NewMemory(), time.Minute)
}

func TestNoteScenario(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	created, err := svc.CreateNote(ctx, "alice", "Buy milk")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected non-zero creation time")
	}

	notes, err := svc.ListNotes(ctx, "alice")
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Body != "Buy milk" {
		t.Fatalf("expected body %q, got %q", "Buy milk", notes[0].Body)
	}

	if err := svc.DeleteNote(ctx, "alice", created.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}

	notes, err = svc.ListNotes(ctx, "alice")
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(notes))
	}
}

func TestCreateNoteValidation(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, "alice", "  \n "); !errors.Is(err, ErrEmptyNoteBody) {
		t.Fatalf("expected ErrEmptyNoteBody, got %v", err)
	}
	if _, err := svc.CreateNote(ctx, "", "note"); !errors.Is(err, ErrMissingOwner) {
		t.Fatalf("expected ErrMissingOwner, got %v", err)
	}
}

func TestListNotesNewestFirst(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	for _, body := range []string{"first", "second", "third"} {
		if _, err := svc.CreateNote(ctx, "alice", body); err != nil {
			t.Fatalf("create note: %v", err)
		}
	}

	notes, err := svc.ListNotes(ctx, "alice")
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	if notes[0].Body != "third" || notes[2].Body != "first" {
		t.Fatalf("expected newest-first ordering, got %+v", notes)
	}
}

func TestNoteOwnershipIsolation(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	created, err := svc.CreateNote(ctx, "alice", "alice's note")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	notes, err := svc.ListNotes(ctx, "bob")
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes for bob, got %d", len(notes))
	}

	if err := svc.DeleteNote(ctx, "bob", created.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound for foreign owner, got %v", err)
	}
}
