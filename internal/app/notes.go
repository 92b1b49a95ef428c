package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/talentflow/internal/adapters/repository"
	"github.com/okian/talentflow/internal/domain/model"
)

// AddNote appends a note to a candidate's log. Text is persisted raw;
// @mention rendering is the presentation layer's concern. Notes are not
// failure-injected.
func (s *Service) AddNote(ctx context.Context, candidateID, text string) error {
	done, err := s.begin(ctx, "add_note")
	if err != nil {
		return err
	}

	err = s.store.Update(ctx, func(tx *repository.Tx) error {
		tx.AppendNote(model.Note{
			ID:          uuid.NewString(),
			CandidateID: candidateID,
			Text:        text,
			At:          time.Now(),
		})
		return nil
	})
	done(err)
	return err
}

// ListNotes returns notes sorted by time ascending. An empty candidateID
// returns all notes; absence is simply an empty list.
func (s *Service) ListNotes(ctx context.Context, candidateID string) ([]model.Note, error) {
	done, err := s.begin(ctx, "list_notes")
	if err != nil {
		return nil, err
	}

	notes, err := s.store.NotesFor(ctx, candidateID)
	done(err)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}
