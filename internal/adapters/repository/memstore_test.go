package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentflow/internal/adapters/repository"
	"github.com/okian/talentflow/internal/domain/model"
)

func TestMemStoreCRUD(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store, err := repository.NewMemStore(ctx)
		So(err, ShouldBeNil)

		Convey("Reading a missing job reports not found", func() {
			_, err := store.Job(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Reading a missing assessment is not an error", func() {
			_, ok, err := store.Assessment(ctx, "job-1")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When a job is committed", func() {
			err := store.Update(ctx, func(tx *repository.Tx) error {
				tx.PutJob(model.Job{ID: "j1", Title: "Backend", Slug: "backend", Status: model.JobActive, Order: 1})
				return nil
			})
			So(err, ShouldBeNil)

			Convey("Then it is readable with all fields", func() {
				j, err := store.Job(ctx, "j1")
				So(err, ShouldBeNil)
				So(j.Title, ShouldEqual, "Backend")
				So(j.Slug, ShouldEqual, "backend")
			})

			Convey("Then reads hand out detached copies", func() {
				err := store.Update(ctx, func(tx *repository.Tx) error {
					return tx.UpdateJob("j1", func(j *model.Job) { j.Tags = []string{"go"} })
				})
				So(err, ShouldBeNil)
				j, _ := store.Job(ctx, "j1")
				j.Tags[0] = "mutated"
				again, _ := store.Job(ctx, "j1")
				So(again.Tags[0], ShouldEqual, "go")
			})

			Convey("Then writes keep detached copies too", func() {
				tags := []string{"go"}
				payload := model.AnswerMap{"q": model.ListAnswer("a")}
				sections := []model.Section{{ID: "s1", Title: "Basics", Questions: []model.Question{
					{ID: "q1", Kind: model.KindShort, Label: "Role"},
				}}}
				err := store.Update(ctx, func(tx *repository.Tx) error {
					tx.PutJob(model.Job{ID: "j2", Title: "Tagged", Slug: "tagged", Tags: tags, Order: 2})
					tx.PutAssessment(model.Assessment{JobID: "j2", Sections: sections})
					tx.AppendResponse(model.Response{ID: "r1", JobID: "j2", Payload: payload})
					return nil
				})
				So(err, ShouldBeNil)

				tags[0] = "mutated"
				sections[0].Questions[0].Label = "mutated"
				payload["q"].Values[0] = "mutated"

				j, _ := store.Job(ctx, "j2")
				So(j.Tags[0], ShouldEqual, "go")
				a, _, _ := store.Assessment(ctx, "j2")
				So(a.Sections[0].Questions[0].Label, ShouldEqual, "Role")
				rs, _ := store.ResponsesFor(ctx, "j2")
				So(rs[0].Payload["q"].Values[0], ShouldEqual, "a")
			})

			Convey("Then slug lookup inside a transaction finds it", func() {
				err := store.Update(ctx, func(tx *repository.Tx) error {
					_, ok := tx.JobBySlug("backend")
					So(ok, ShouldBeTrue)
					_, ok = tx.JobBySlug("frontend")
					So(ok, ShouldBeFalse)
					return nil
				})
				So(err, ShouldBeNil)
			})
		})

		Convey("Counts cover every table", func() {
			counts := store.Counts(ctx)
			So(counts, ShouldContainKey, repository.TableJobs)
			So(counts, ShouldContainKey, repository.TableResponses)
			So(counts[repository.TableJobs], ShouldEqual, 0)
		})

		Convey("A closed store refuses transactions", func() {
			So(store.Close(), ShouldBeNil)
			err := store.Update(ctx, func(tx *repository.Tx) error { return nil })
			So(errors.Is(err, repository.ErrClosed), ShouldBeTrue)
		})
	})
}

func TestMemStoreTransactions(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with one job", t, func() {
		store, err := repository.NewMemStore(ctx)
		So(err, ShouldBeNil)
		So(store.Update(ctx, func(tx *repository.Tx) error {
			tx.PutJob(model.Job{ID: "j1", Title: "Backend", Slug: "backend", Order: 1})
			return nil
		}), ShouldBeNil)

		Convey("A failed transaction leaves nothing behind", func() {
			boom := errors.New("boom")
			err := store.Update(ctx, func(tx *repository.Tx) error {
				tx.PutJob(model.Job{ID: "j2", Title: "Doomed", Slug: "doomed", Order: 2})
				tx.AppendNote(model.Note{ID: "n1", CandidateID: "c1", Text: "doomed too"})
				return boom
			})
			So(errors.Is(err, boom), ShouldBeTrue)

			_, err = store.Job(ctx, "j2")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			notes, err := store.NotesFor(ctx, "c1")
			So(err, ShouldBeNil)
			So(notes, ShouldBeEmpty)
		})

		Convey("Multi-table writes land together", func() {
			err := store.Update(ctx, func(tx *repository.Tx) error {
				tx.PutCandidate(model.Candidate{ID: "c1", Name: "Ada", Stage: model.StageApplied, JobID: "j1"})
				tx.AppendTimeline(model.TimelineEvent{CandidateID: "c1", At: time.Now(), Action: model.ActionCreated})
				return nil
			})
			So(err, ShouldBeNil)

			c, err := store.Candidate(ctx, "c1")
			So(err, ShouldBeNil)
			So(c.Name, ShouldEqual, "Ada")
			tl, err := store.TimelineFor(ctx, "c1")
			So(err, ShouldBeNil)
			So(tl, ShouldHaveLength, 1)
		})

		Convey("Timeline and notes come back oldest first", func() {
			base := time.Now()
			err := store.Update(ctx, func(tx *repository.Tx) error {
				tx.AppendTimeline(model.TimelineEvent{CandidateID: "c1", At: base.Add(time.Hour), Action: model.ActionStageChange, ToStage: model.StageScreen})
				tx.AppendTimeline(model.TimelineEvent{CandidateID: "c1", At: base, Action: model.ActionCreated})
				tx.AppendNote(model.Note{ID: "n2", CandidateID: "c1", Text: "later", At: base.Add(time.Minute)})
				tx.AppendNote(model.Note{ID: "n1", CandidateID: "c1", Text: "earlier", At: base})
				return nil
			})
			So(err, ShouldBeNil)

			tl, _ := store.TimelineFor(ctx, "c1")
			So(tl[0].Action, ShouldEqual, model.ActionCreated)
			So(tl[1].ToStage, ShouldEqual, model.StageScreen)

			notes, _ := store.NotesFor(ctx, "c1")
			So(notes[0].Text, ShouldEqual, "earlier")
			So(notes[1].Text, ShouldEqual, "later")
		})

		Convey("Deleting records works inside a transaction", func() {
			So(store.Update(ctx, func(tx *repository.Tx) error {
				tx.PutCandidate(model.Candidate{ID: "gone", Name: "Temp", Stage: model.StageApplied})
				return nil
			}), ShouldBeNil)
			So(store.Update(ctx, func(tx *repository.Tx) error {
				if err := tx.DeleteCandidate("gone"); err != nil {
					return err
				}
				return tx.DeleteCandidate("never-there")
			}), ShouldNotBeNil)

			// The failed second delete rolled back the first.
			_, err := store.Candidate(ctx, "gone")
			So(err, ShouldBeNil)

			So(store.Update(ctx, func(tx *repository.Tx) error {
				return tx.DeleteCandidate("gone")
			}), ShouldBeNil)
			_, err = store.Candidate(ctx, "gone")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Updating a missing record fails the transaction", func() {
			err := store.Update(ctx, func(tx *repository.Tx) error {
				return tx.UpdateCandidate("ghost", func(c *model.Candidate) { c.Stage = model.StageHired })
			})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMemStoreSnapshot(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with a snapshot path", t, func() {
		path := filepath.Join(t.TempDir(), "snapshot.json")
		store, err := repository.NewMemStore(ctx, repository.WithSnapshotPath(path))
		So(err, ShouldBeNil)

		So(store.Update(ctx, func(tx *repository.Tx) error {
			tx.PutJob(model.Job{ID: "j1", Title: "Backend", Slug: "backend", Status: model.JobActive, Tags: []string{"go"}, Order: 1})
			tx.PutAssessment(model.Assessment{JobID: "j1", Sections: []model.Section{{ID: "s1", Title: "Basics"}}})
			tx.AppendResponse(model.Response{ID: "r1", JobID: "j1", Payload: model.AnswerMap{"q": model.StringAnswer("Yes")}})
			return nil
		}), ShouldBeNil)

		Convey("A fresh store over the same path sees the committed state", func() {
			reopened, err := repository.NewMemStore(ctx, repository.WithSnapshotPath(path))
			So(err, ShouldBeNil)

			j, err := reopened.Job(ctx, "j1")
			So(err, ShouldBeNil)
			So(j.Slug, ShouldEqual, "backend")
			So(j.Tags, ShouldResemble, []string{"go"})

			a, ok, err := reopened.Assessment(ctx, "j1")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(a.Sections, ShouldHaveLength, 1)

			rs, err := reopened.ResponsesFor(ctx, "j1")
			So(err, ShouldBeNil)
			So(rs, ShouldHaveLength, 1)
			So(rs[0].Payload["q"].Value, ShouldEqual, "Yes")
		})

		Convey("A missing snapshot file starts the store empty", func() {
			fresh, err := repository.NewMemStore(ctx, repository.WithSnapshotPath(filepath.Join(t.TempDir(), "none.json")))
			So(err, ShouldBeNil)
			So(fresh.Counts(ctx)[repository.TableJobs], ShouldEqual, 0)
		})
	})
}
