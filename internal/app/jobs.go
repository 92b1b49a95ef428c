package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/talentflow/internal/adapters/repository"
	"github.com/okian/talentflow/internal/domain/model"
	"github.com/okian/talentflow/internal/domain/ordering"
)

// JobListQuery filters and pages the jobs collection.
type JobListQuery struct {
	Search   string
	Status   model.JobStatus
	Page     int
	PageSize int
	Sort     string
}

// JobPage is one page of filtered jobs. Total counts the filtered set,
// not the whole table.
type JobPage struct {
	Items []model.Job `json:"items"`
	Total int         `json:"total"`
}

// CreateJobInput carries the caller-supplied job fields. A missing slug
// is derived from the title.
type CreateJobInput struct {
	Title string
	Slug  string
	Tags  []string
}

// JobPatch carries partial job edits. Nil fields are left untouched.
type JobPatch struct {
	Title  *string
	Slug   *string
	Status *model.JobStatus
	Tags   *[]string
}

// ListJobs returns the filtered, order-sorted page of jobs. The search
// term matches title and tags, case-insensitively.
func (s *Service) ListJobs(ctx context.Context, q JobListQuery) (JobPage, error) {
	done, err := s.begin(ctx, "list_jobs")
	if err != nil {
		return JobPage{}, err
	}

	jobs, err := s.store.Jobs(ctx)
	if err != nil {
		done(err)
		return JobPage{}, err
	}

	filtered := jobs[:0]
	needle := strings.ToLower(q.Search)
	for _, j := range jobs {
		if needle != "" {
			hay := strings.ToLower(j.Title + " " + strings.Join(j.Tags, " "))
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		if q.Status != "" && j.Status != q.Status {
			continue
		}
		filtered = append(filtered, j)
	}

	if q.Sort == "" || q.Sort == "order" {
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Order < filtered[j].Order })
	}

	page, pageSize := s.clampPage(q.Page, q.PageSize, defaultJobPageSize)
	out := JobPage{Items: pageWindow(filtered, page, pageSize), Total: len(filtered)}
	done(nil)
	return out, nil
}

// CreateJob validates slug uniqueness and appends the job at the end of
// the ordering (order = count + 1). The returned record carries the
// server-assigned id, order, and defaulted status.
func (s *Service) CreateJob(ctx context.Context, in CreateJobInput) (model.Job, error) {
	done, err := s.begin(ctx, "create_job")
	if err != nil {
		return model.Job{}, err
	}

	if s.injectWriteFailure() {
		done(ErrServiceUnavailable)
		return model.Job{}, ErrServiceUnavailable
	}

	job := model.Job{
		ID:     uuid.NewString(),
		Title:  in.Title,
		Slug:   in.Slug,
		Status: model.JobActive,
		Tags:   in.Tags,
	}
	if job.Slug == "" {
		job.Slug = model.DeriveSlug(in.Title)
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}

	err = s.store.Update(ctx, func(tx *repository.Tx) error {
		if _, taken := tx.JobBySlug(job.Slug); taken {
			return fmt.Errorf("slug %q: %w", job.Slug, ErrDuplicateSlug)
		}
		job.Order = tx.JobCount() + 1
		tx.PutJob(job)
		return nil
	})
	done(err)
	if err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// PatchJob merges partial fields into an existing job. A slug change is
// rejected when it collides with another job's slug.
func (s *Service) PatchJob(ctx context.Context, id string, patch JobPatch) (model.Job, error) {
	done, err := s.begin(ctx, "patch_job")
	if err != nil {
		return model.Job{}, err
	}

	if s.injectWriteFailure() {
		done(ErrServiceUnavailable)
		return model.Job{}, ErrServiceUnavailable
	}

	var updated model.Job
	err = s.store.Update(ctx, func(tx *repository.Tx) error {
		current, err := tx.Job(id)
		if err != nil {
			return err
		}
		if patch.Slug != nil && *patch.Slug != current.Slug {
			if _, taken := tx.JobBySlug(*patch.Slug); taken {
				return fmt.Errorf("slug %q: %w", *patch.Slug, ErrDuplicateSlug)
			}
		}
		if err := tx.UpdateJob(id, func(j *model.Job) {
			if patch.Title != nil {
				j.Title = *patch.Title
			}
			if patch.Slug != nil {
				j.Slug = *patch.Slug
			}
			if patch.Status != nil {
				j.Status = *patch.Status
			}
			if patch.Tags != nil {
				j.Tags = *patch.Tags
			}
		}); err != nil {
			return err
		}
		updated, err = tx.Job(id)
		return err
	})
	done(err)
	if err != nil {
		return model.Job{}, err
	}
	return updated, nil
}

// ReorderJob moves a job to the clamped 1-based target position and
// renumbers every job densely, as one transaction.
func (s *Service) ReorderJob(ctx context.Context, id string, toOrder int) error {
	done, err := s.begin(ctx, "reorder_job")
	if err != nil {
		return err
	}

	if s.injectWriteFailure() {
		done(ErrServiceUnavailable)
		return ErrServiceUnavailable
	}

	err = s.store.Update(ctx, func(tx *repository.Tx) error {
		jobs := tx.Jobs()
		sort.Slice(jobs, func(i, j int) bool { return jobs[i].Order < jobs[j].Order })
		ids := make([]string, len(jobs))
		for i, j := range jobs {
			ids[i] = j.ID
		}

		placements, err := ordering.Plan(ids, id, toOrder)
		if err != nil {
			return fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		for _, p := range placements {
			if err := tx.UpdateJob(p.ID, func(j *model.Job) { j.Order = p.Order }); err != nil {
				return err
			}
		}
		return nil
	})
	done(err)
	return err
}
