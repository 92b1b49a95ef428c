package client

import (
	"context"
	"sort"

	"github.com/okian/talentflow/internal/domain/model"
)

// JobReorderer is the slice of the router the job list needs.
type JobReorderer interface {
	ReorderJob(ctx context.Context, id string, toOrder int) error
}

// JobBoard is the locally-held, order-sorted job list behind the
// drag-reorder interaction.
type JobBoard struct {
	svc JobReorderer
	m   *Mutator[[]model.Job]
}

func cloneJobs(jobs []model.Job) []model.Job {
	out := make([]model.Job, len(jobs))
	for i, j := range jobs {
		out[i] = j.Clone()
	}
	return out
}

// NewJobBoard builds a board over a server-fetched job list.
func NewJobBoard(svc JobReorderer, jobs []model.Job) *JobBoard {
	sorted := cloneJobs(jobs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return &JobBoard{svc: svc, m: NewMutator(sorted, cloneJobs)}
}

// Jobs returns the current UI-visible job list, order ascending.
func (b *JobBoard) Jobs() []model.Job {
	return b.m.State()
}

// Reload replaces the board with a fresh server-fetched list.
func (b *JobBoard) Reload(jobs []model.Job) {
	sorted := cloneJobs(jobs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	b.m.Reset(sorted)
}

// Move applies the reorder instruction "move job id to position toOrder"
// speculatively, so the caller observes the resequenced list immediately,
// and confirms it through the router. The channel yields nil on success
// or the failure after the list has reverted; the gesture may simply be
// repeated.
func (b *JobBoard) Move(ctx context.Context, id string, toOrder int) <-chan error {
	apply := func(jobs []model.Job) []model.Job {
		idx := -1
		for i, j := range jobs {
			if j.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return jobs
		}
		moving := jobs[idx]
		rest := append(jobs[:idx:idx], jobs[idx+1:]...)
		at := toOrder - 1
		if at < 0 {
			at = 0
		}
		if at > len(rest) {
			at = len(rest)
		}
		next := make([]model.Job, 0, len(jobs))
		next = append(next, rest[:at]...)
		next = append(next, moving)
		next = append(next, rest[at:]...)
		for i := range next {
			next[i].Order = i + 1
		}
		return next
	}
	confirm := func(ctx context.Context) error {
		return b.svc.ReorderJob(ctx, id, toOrder)
	}
	return b.m.Mutate(ctx, apply, confirm)
}
