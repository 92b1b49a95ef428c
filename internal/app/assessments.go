package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/talentflow/internal/adapters/repository"
	"github.com/okian/talentflow/internal/domain/assessment"
	"github.com/okian/talentflow/internal/domain/model"
)

// GetAssessment returns the questionnaire for a job, or nil when none
// exists. Absence is not an error.
func (s *Service) GetAssessment(ctx context.Context, jobID string) (*model.Assessment, error) {
	done, err := s.begin(ctx, "get_assessment")
	if err != nil {
		return nil, err
	}

	a, ok, err := s.store.Assessment(ctx, jobID)
	done(err)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// PutAssessment inserts or replaces the questionnaire for a job.
// Sections without ids are assigned fresh ones, as are their questions;
// existing ids are preserved so builder round-trips are structural
// no-ops.
func (s *Service) PutAssessment(ctx context.Context, jobID string, sections []model.Section) error {
	done, err := s.begin(ctx, "put_assessment")
	if err != nil {
		return err
	}

	if s.injectWriteFailure() {
		done(ErrServiceUnavailable)
		return ErrServiceUnavailable
	}

	// Ids are assigned on a private copy; the caller's sections are
	// never written to.
	a := model.Assessment{JobID: jobID, Sections: sections}.Clone()
	for si := range a.Sections {
		if a.Sections[si].ID == "" {
			a.Sections[si].ID = uuid.NewString()
		}
		for qi := range a.Sections[si].Questions {
			if a.Sections[si].Questions[qi].ID == "" {
				a.Sections[si].Questions[qi].ID = uuid.NewString()
			}
		}
	}

	err = s.store.Update(ctx, func(tx *repository.Tx) error {
		tx.PutAssessment(a)
		return nil
	})
	done(err)
	return err
}

// SubmitAssessment validates the answer set against the stored schema
// (when one exists) and appends a response record. A validation failure
// blocks the submission and leaves the store untouched.
func (s *Service) SubmitAssessment(ctx context.Context, jobID, candidateID string, payload model.AnswerMap) error {
	done, err := s.begin(ctx, "submit_assessment")
	if err != nil {
		return err
	}

	if s.injectWriteFailure() {
		done(ErrServiceUnavailable)
		return ErrServiceUnavailable
	}

	err = s.store.Update(ctx, func(tx *repository.Tx) error {
		if schema, ok := tx.Assessment(jobID); ok {
			if err := assessment.Validate(schema, payload); err != nil {
				return err
			}
		}
		tx.AppendResponse(model.Response{
			ID:          uuid.NewString(),
			JobID:       jobID,
			CandidateID: candidateID,
			Payload:     payload,
			SubmittedAt: time.Now(),
		})
		return nil
	})
	done(err)
	return err
}
