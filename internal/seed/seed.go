// Package seed populates an empty store with the fixture data the UI
// expects: a paged jobs board, a large candidate pool, stage histories,
// and a few assessments exercising every question kind plus a
// conditional dependency.
package seed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/okian/talentflow/internal/adapters/repository"
	"github.com/okian/talentflow/internal/domain/model"
	"github.com/okian/talentflow/pkg/logger"
)

// Fixture sizes.
const (
	jobCount        = 25
	candidateCount  = 1000
	assessmentCount = 3
)

var jobTags = []string{"frontend", "backend", "fullstack", "intern", "mid", "senior"}

// IfEmpty seeds fixture data when the store holds no jobs. The whole
// fixture commits in one transaction.
func IfEmpty(ctx context.Context, store repository.Store, log logger.Logger) error {
	counts := store.Counts(ctx)
	if counts[repository.TableJobs] > 0 {
		return nil
	}

	f := gofakeit.New(0)
	stages := model.Stages()

	err := store.Update(ctx, func(tx *repository.Tx) error {
		jobs := make([]model.Job, jobCount)
		for i := range jobs {
			tag := jobTags[i%len(jobTags)]
			status := model.JobActive
			if i%5 == 0 {
				status = model.JobArchived
			}
			jobs[i] = model.Job{
				ID:     uuid.NewString(),
				Title:  fmt.Sprintf("Job %d - %s", i+1, tag),
				Slug:   fmt.Sprintf("job-%d", i+1),
				Status: status,
				Tags:   []string{tag},
				Order:  i + 1,
			}
			tx.PutJob(jobs[i])
		}

		for i := 0; i < candidateCount; i++ {
			c := model.Candidate{
				ID:    uuid.NewString(),
				Name:  f.Name(),
				Email: strings.ToLower(f.Email()),
				Stage: stages[f.Number(0, len(stages)-1)],
				JobID: jobs[f.Number(0, len(jobs)-1)].ID,
			}
			tx.PutCandidate(c)

			// Seeded histories start mid-pipeline: stage_change steps
			// only. A created event is appended solely for candidates
			// entering through the router.
			steps := f.Number(1, 4)
			at := time.Now().AddDate(0, 0, -f.Number(3, 15))
			for s := 0; s < steps; s++ {
				tx.AppendTimeline(model.TimelineEvent{
					CandidateID: c.ID,
					At:          at,
					Action:      model.ActionStageChange,
					ToStage:     stages[f.Number(0, len(stages)-1)],
				})
				at = at.AddDate(0, 0, f.Number(1, 5))
			}
		}

		for i := 0; i < assessmentCount && i < len(jobs); i++ {
			tx.PutAssessment(buildAssessment(jobs[i].ID))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if log != nil {
		log.Info(ctx, "seeded fixture data",
			logger.Int("jobs", jobCount),
			logger.Int("candidates", candidateCount),
			logger.Int("assessments", assessmentCount),
		)
	}
	return nil
}

// Normalize removes jobs duplicated by slug and renumbers orders densely,
// repairing stores left inconsistent by earlier runs.
func Normalize(ctx context.Context, store repository.Store) error {
	return store.Update(ctx, func(tx *repository.Tx) error {
		jobs := tx.Jobs()
		sort.Slice(jobs, func(i, j int) bool { return jobs[i].Order < jobs[j].Order })

		seen := make(map[string]bool, len(jobs))
		kept := jobs[:0]
		for _, j := range jobs {
			key := j.Slug
			if key == "" {
				key = j.ID
			}
			if seen[key] {
				if err := tx.DeleteJob(j.ID); err != nil {
					return err
				}
				continue
			}
			seen[key] = true
			kept = append(kept, j)
		}

		for i, j := range kept {
			if j.Order == i+1 {
				continue
			}
			order := i + 1
			if err := tx.UpdateJob(j.ID, func(job *model.Job) { job.Order = order }); err != nil {
				return err
			}
		}
		return nil
	})
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func options(labels ...string) []model.AnswerOption {
	out := make([]model.AnswerOption, len(labels))
	for i, l := range labels {
		out[i] = model.AnswerOption{ID: uuid.NewString(), Label: l}
	}
	return out
}

// buildAssessment reproduces the canonical two-section questionnaire:
// five questions per section covering all six kinds, with the first
// Experience question gated on the first Basics answer being "Yes".
func buildAssessment(jobID string) model.Assessment {
	basics := model.Section{
		ID:    uuid.NewString(),
		Title: "Basics",
		Questions: []model.Question{
			{ID: uuid.NewString(), Kind: model.KindSingle, Label: "Do you have experience with React?", Required: true, Options: options("Yes", "No")},
			{ID: uuid.NewString(), Kind: model.KindShort, Label: "What is your current role?", Required: true, MaxLength: ptrInt(80)},
			{ID: uuid.NewString(), Kind: model.KindLong, Label: "Briefly describe a project you're proud of.", MaxLength: ptrInt(500)},
			{ID: uuid.NewString(), Kind: model.KindNumber, Label: "How many years of JavaScript experience?", Required: true, Min: ptrFloat(0), Max: ptrFloat(20)},
			{ID: uuid.NewString(), Kind: model.KindSingle, Label: "Are you comfortable with TypeScript?", Required: true, Options: options("Yes", "No", "Learning")},
		},
	}
	experience := model.Section{
		ID:    uuid.NewString(),
		Title: "Experience",
		Questions: []model.Question{
			{ID: uuid.NewString(), Kind: model.KindMulti, Label: "Which frontend tools have you used?", Options: options("React", "Vue", "Angular", "Vite", "Webpack")},
			{ID: uuid.NewString(), Kind: model.KindShort, Label: "Preferred working style (remote/hybrid/office)?", Required: true, MaxLength: ptrInt(40)},
			{ID: uuid.NewString(), Kind: model.KindNumber, Label: "What is your notice period (weeks)?", Min: ptrFloat(0), Max: ptrFloat(16)},
			{ID: uuid.NewString(), Kind: model.KindSingle, Label: "Do you have experience with state management libraries?", Options: options("Redux", "Zustand", "MobX", "No")},
			{ID: uuid.NewString(), Kind: model.KindFile, Label: "Upload a sample or portfolio (filename only)"},
		},
	}
	experience.Questions[0].ShowIf = &model.ShowIf{
		QuestionID: basics.Questions[0].ID,
		Equals:     "Yes",
	}
	return model.Assessment{JobID: jobID, Sections: []model.Section{basics, experience}}
}
