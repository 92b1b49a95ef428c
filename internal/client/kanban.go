package client

import (
	"context"

	app "github.com/okian/talentflow/internal/app"
	"github.com/okian/talentflow/internal/domain/model"
)

// StagePatcher is the slice of the router the kanban board needs.
type StagePatcher interface {
	PatchCandidate(ctx context.Context, id string, patch app.CandidatePatch) (model.Candidate, error)
}

// KanbanBoard is the locally-held candidate collection behind the
// drag-between-columns stage transition.
type KanbanBoard struct {
	svc StagePatcher
	m   *Mutator[[]model.Candidate]
}

func cloneCandidates(cs []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, len(cs))
	copy(out, cs)
	return out
}

// NewKanbanBoard builds a board over a server-fetched candidate list.
func NewKanbanBoard(svc StagePatcher, candidates []model.Candidate) *KanbanBoard {
	return &KanbanBoard{svc: svc, m: NewMutator(candidates, cloneCandidates)}
}

// Candidates returns the current UI-visible candidate collection.
func (b *KanbanBoard) Candidates() []model.Candidate {
	return b.m.State()
}

// Reload replaces the board with a fresh server-fetched list.
func (b *KanbanBoard) Reload(candidates []model.Candidate) {
	b.m.Reset(candidates)
}

// Columns groups the current collection into stage columns, key order
// given by model.Stages.
func (b *KanbanBoard) Columns() map[model.Stage][]model.Candidate {
	cols := make(map[model.Stage][]model.Candidate, len(model.Stages()))
	for _, stage := range model.Stages() {
		cols[stage] = []model.Candidate{}
	}
	for _, c := range b.m.State() {
		cols[c.Stage] = append(cols[c.Stage], c)
	}
	return cols
}

// MoveToStage moves a candidate into another column speculatively and
// confirms the stage patch through the router. A failed confirmation
// snaps the card back to its source column.
func (b *KanbanBoard) MoveToStage(ctx context.Context, id string, stage model.Stage) <-chan error {
	apply := func(cs []model.Candidate) []model.Candidate {
		for i := range cs {
			if cs[i].ID == id {
				cs[i].Stage = stage
				break
			}
		}
		return cs
	}
	confirm := func(ctx context.Context) error {
		_, err := b.svc.PatchCandidate(ctx, id, app.CandidatePatch{Stage: &stage})
		return err
	}
	return b.m.Mutate(ctx, apply, confirm)
}
