package seed_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentflow/internal/adapters/repository"
	"github.com/okian/talentflow/internal/domain/model"
	"github.com/okian/talentflow/internal/seed"
)

func TestIfEmpty(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store, err := repository.NewMemStore(ctx)
		So(err, ShouldBeNil)

		Convey("When the fixture is seeded", func() {
			So(seed.IfEmpty(ctx, store, nil), ShouldBeNil)

			Convey("Then the fixture sizes match", func() {
				counts := store.Counts(ctx)
				So(counts[repository.TableJobs], ShouldEqual, 25)
				So(counts[repository.TableCandidates], ShouldEqual, 1000)
				So(counts[repository.TableAssessments], ShouldEqual, 3)
				So(counts[repository.TableTimelines], ShouldBeGreaterThanOrEqualTo, 1000)
			})

			Convey("Then job orders are dense and slugs unique", func() {
				jobs, err := store.Jobs(ctx)
				So(err, ShouldBeNil)
				orders := make(map[int]bool, len(jobs))
				slugs := make(map[string]bool, len(jobs))
				for _, j := range jobs {
					So(orders[j.Order], ShouldBeFalse)
					So(slugs[j.Slug], ShouldBeFalse)
					orders[j.Order] = true
					slugs[j.Slug] = true
				}
				for o := 1; o <= len(jobs); o++ {
					So(orders[o], ShouldBeTrue)
				}
			})

			Convey("Then every candidate holds a known stage and a real job", func() {
				jobs, _ := store.Jobs(ctx)
				jobIDs := make(map[string]bool, len(jobs))
				for _, j := range jobs {
					jobIDs[j.ID] = true
				}
				candidates, err := store.Candidates(ctx)
				So(err, ShouldBeNil)
				for _, c := range candidates {
					So(model.ValidStage(c.Stage), ShouldBeTrue)
					So(jobIDs[c.JobID], ShouldBeTrue)
					So(c.Email, ShouldNotBeEmpty)
				}
			})

			Convey("Then each questionnaire exercises every kind and one dependency", func() {
				jobs, _ := store.Jobs(ctx)
				seen := 0
				for _, j := range jobs {
					a, ok, err := store.Assessment(ctx, j.ID)
					So(err, ShouldBeNil)
					if !ok {
						continue
					}
					seen++
					So(a.Sections, ShouldHaveLength, 2)

					kinds := make(map[model.QuestionKind]bool)
					deps := 0
					total := 0
					for _, s := range a.Sections {
						for _, q := range s.Questions {
							kinds[q.Kind] = true
							total++
							if q.ShowIf != nil {
								deps++
							}
						}
					}
					So(total, ShouldEqual, 10)
					So(kinds, ShouldHaveLength, 6)
					So(deps, ShouldEqual, 1)
				}
				So(seen, ShouldEqual, 3)
			})

			Convey("Then seeded histories hold stage_change events only", func() {
				candidates, err := store.Candidates(ctx)
				So(err, ShouldBeNil)
				for _, c := range candidates[:20] {
					tl, err := store.TimelineFor(ctx, c.ID)
					So(err, ShouldBeNil)
					So(tl, ShouldNotBeEmpty)
					for _, ev := range tl {
						So(ev.Action, ShouldEqual, model.ActionStageChange)
						So(model.ValidStage(ev.ToStage), ShouldBeTrue)
					}
				}
			})

			Convey("Then reseeding a populated store is a no-op", func() {
				So(seed.IfEmpty(ctx, store, nil), ShouldBeNil)
				So(store.Counts(ctx)[repository.TableCandidates], ShouldEqual, 1000)
			})
		})
	})
}

func TestNormalize(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with duplicated slugs and gapped orders", t, func() {
		store, err := repository.NewMemStore(ctx)
		So(err, ShouldBeNil)
		So(store.Update(ctx, func(tx *repository.Tx) error {
			tx.PutJob(model.Job{ID: "a", Title: "A", Slug: "backend", Order: 1})
			tx.PutJob(model.Job{ID: "b", Title: "B", Slug: "frontend", Order: 4})
			tx.PutJob(model.Job{ID: "c", Title: "C", Slug: "backend", Order: 7})
			return nil
		}), ShouldBeNil)

		Convey("When normalized", func() {
			So(seed.Normalize(ctx, store), ShouldBeNil)

			Convey("Then the later duplicate is gone and orders are dense", func() {
				jobs, err := store.Jobs(ctx)
				So(err, ShouldBeNil)
				So(jobs, ShouldHaveLength, 2)

				byID := make(map[string]model.Job, len(jobs))
				for _, j := range jobs {
					byID[j.ID] = j
				}
				So(byID, ShouldNotContainKey, "c")
				So(byID["a"].Order, ShouldEqual, 1)
				So(byID["b"].Order, ShouldEqual, 2)
			})
		})
	})
}
