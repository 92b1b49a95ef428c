package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/talentflow/internal/adapters/repository"
	"github.com/okian/talentflow/internal/domain/model"
)

// CandidateListQuery filters and pages the candidates collection.
type CandidateListQuery struct {
	Search   string
	Stage    model.Stage
	Page     int
	PageSize int
}

// CandidatePage is one page of filtered candidates. Total counts the
// filtered set, not the whole table.
type CandidatePage struct {
	Items []model.Candidate `json:"items"`
	Total int               `json:"total"`
}

// CreateCandidateInput carries the caller-supplied candidate fields.
type CreateCandidateInput struct {
	Name  string
	Email string
	JobID string
}

// CandidatePatch carries partial candidate edits. Nil fields are left
// untouched.
type CandidatePatch struct {
	Name  *string
	Email *string
	Stage *model.Stage
	JobID *string
}

// ListCandidates returns the filtered page of candidates. The search
// term matches name and email, case-insensitively.
func (s *Service) ListCandidates(ctx context.Context, q CandidateListQuery) (CandidatePage, error) {
	done, err := s.begin(ctx, "list_candidates")
	if err != nil {
		return CandidatePage{}, err
	}

	candidates, err := s.store.Candidates(ctx)
	if err != nil {
		done(err)
		return CandidatePage{}, err
	}

	filtered := candidates[:0]
	needle := strings.ToLower(q.Search)
	for _, c := range candidates {
		if needle != "" {
			hay := strings.ToLower(c.Name + " " + c.Email)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		if q.Stage != "" && c.Stage != q.Stage {
			continue
		}
		filtered = append(filtered, c)
	}

	page, pageSize := s.clampPage(q.Page, q.PageSize, defaultCandidatePageSize)
	out := CandidatePage{Items: pageWindow(filtered, page, pageSize), Total: len(filtered)}
	done(nil)
	return out, nil
}

// CreateCandidate inserts a candidate at the default "applied" stage and
// appends a created timeline event.
func (s *Service) CreateCandidate(ctx context.Context, in CreateCandidateInput) (model.Candidate, error) {
	done, err := s.begin(ctx, "create_candidate")
	if err != nil {
		return model.Candidate{}, err
	}

	if s.injectWriteFailure() {
		done(ErrServiceUnavailable)
		return model.Candidate{}, ErrServiceUnavailable
	}

	candidate := model.Candidate{
		ID:    uuid.NewString(),
		Name:  in.Name,
		Email: in.Email,
		Stage: model.StageApplied,
		JobID: in.JobID,
	}

	err = s.store.Update(ctx, func(tx *repository.Tx) error {
		tx.PutCandidate(candidate)
		tx.AppendTimeline(model.TimelineEvent{
			CandidateID: candidate.ID,
			At:          time.Now(),
			Action:      model.ActionCreated,
		})
		return nil
	})
	done(err)
	if err != nil {
		return model.Candidate{}, err
	}
	return candidate, nil
}

// PatchCandidate merges partial fields into an existing candidate. A
// stage change appends exactly one stage_change timeline event; setting
// the stage to its current value appends none.
func (s *Service) PatchCandidate(ctx context.Context, id string, patch CandidatePatch) (model.Candidate, error) {
	done, err := s.begin(ctx, "patch_candidate")
	if err != nil {
		return model.Candidate{}, err
	}

	if s.injectWriteFailure() {
		done(ErrServiceUnavailable)
		return model.Candidate{}, ErrServiceUnavailable
	}

	var updated model.Candidate
	err = s.store.Update(ctx, func(tx *repository.Tx) error {
		current, err := tx.Candidate(id)
		if err != nil {
			return err
		}
		if err := tx.UpdateCandidate(id, func(c *model.Candidate) {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Email != nil {
				c.Email = *patch.Email
			}
			if patch.Stage != nil {
				c.Stage = *patch.Stage
			}
			if patch.JobID != nil {
				c.JobID = *patch.JobID
			}
		}); err != nil {
			return err
		}
		if patch.Stage != nil && *patch.Stage != current.Stage {
			tx.AppendTimeline(model.TimelineEvent{
				CandidateID: id,
				At:          time.Now(),
				Action:      model.ActionStageChange,
				ToStage:     *patch.Stage,
			})
		}
		updated, err = tx.Candidate(id)
		return err
	})
	done(err)
	if err != nil {
		return model.Candidate{}, err
	}
	return updated, nil
}

// CandidateTimeline returns a candidate's events sorted by time
// ascending.
func (s *Service) CandidateTimeline(ctx context.Context, candidateID string) ([]model.TimelineEvent, error) {
	done, err := s.begin(ctx, "candidate_timeline")
	if err != nil {
		return nil, err
	}

	events, err := s.store.TimelineFor(ctx, candidateID)
	done(err)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.TimelineEvent{}
	}
	return events, nil
}
