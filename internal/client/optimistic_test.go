package client_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	app "github.com/okian/talentflow/internal/app"
	"github.com/okian/talentflow/internal/client"
	"github.com/okian/talentflow/internal/domain/model"
)

type fakeReorderer struct {
	err   error
	gate  chan struct{}
	calls []int
}

func (f *fakeReorderer) ReorderJob(ctx context.Context, id string, toOrder int) error {
	if f.gate != nil {
		<-f.gate
	}
	f.calls = append(f.calls, toOrder)
	return f.err
}

type fakePatcher struct {
	err error
}

func (f *fakePatcher) PatchCandidate(ctx context.Context, id string, patch app.CandidatePatch) (model.Candidate, error) {
	if f.err != nil {
		return model.Candidate{}, f.err
	}
	return model.Candidate{ID: id, Stage: *patch.Stage}, nil
}

func boardJobs() []model.Job {
	return []model.Job{
		{ID: "a", Title: "A", Order: 1},
		{ID: "b", Title: "B", Order: 2},
		{ID: "c", Title: "C", Order: 3},
	}
}

func titles(jobs []model.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func TestJobBoardMove(t *testing.T) {
	ctx := context.Background()

	Convey("Given a job board over [A B C]", t, func() {
		Convey("When a move confirms", func() {
			svc := &fakeReorderer{}
			board := client.NewJobBoard(svc, boardJobs())

			result := board.Move(ctx, "a", 3)

			Convey("Then the list updates before confirmation lands", func() {
				So(titles(board.Jobs()), ShouldResemble, []string{"B", "C", "A"})
			})

			Convey("Then orders are dense after the splice", func() {
				for i, j := range board.Jobs() {
					So(j.Order, ShouldEqual, i+1)
				}
			})

			Convey("Then the confirmation succeeds and the list stays", func() {
				So(<-result, ShouldBeNil)
				So(titles(board.Jobs()), ShouldResemble, []string{"B", "C", "A"})
				So(svc.calls, ShouldResemble, []int{3})
			})
		})

		Convey("When the confirmation fails", func() {
			boom := errors.New("service unavailable")
			svc := &fakeReorderer{err: boom, gate: make(chan struct{})}
			board := client.NewJobBoard(svc, boardJobs())

			result := board.Move(ctx, "a", 3)

			Convey("Then the list reverts and the error surfaces for retry", func() {
				So(titles(board.Jobs()), ShouldResemble, []string{"B", "C", "A"})
				close(svc.gate)
				So(errors.Is(<-result, boom), ShouldBeTrue)
				So(titles(board.Jobs()), ShouldResemble, []string{"A", "B", "C"})
				for i, j := range board.Jobs() {
					So(j.Order, ShouldEqual, i+1)
				}
			})
		})

		Convey("When the moved id is unknown", func() {
			svc := &fakeReorderer{}
			board := client.NewJobBoard(svc, boardJobs())
			result := board.Move(ctx, "ghost", 2)

			Convey("Then the list is untouched locally", func() {
				So(titles(board.Jobs()), ShouldResemble, []string{"A", "B", "C"})
				<-result
			})
		})

		Convey("Out-of-range targets clamp locally like the router does", func() {
			svc := &fakeReorderer{}
			board := client.NewJobBoard(svc, boardJobs())
			<-board.Move(ctx, "c", -5)
			So(titles(board.Jobs()), ShouldResemble, []string{"C", "A", "B"})
			<-board.Move(ctx, "c", 99)
			So(titles(board.Jobs()), ShouldResemble, []string{"A", "B", "C"})
		})

		Convey("Reload replaces any speculative overlay", func() {
			svc := &fakeReorderer{err: errors.New("down")}
			board := client.NewJobBoard(svc, boardJobs())
			result := board.Move(ctx, "a", 3)
			board.Reload([]model.Job{{ID: "z", Title: "Z", Order: 1}})
			<-result
			Convey("and the reloaded list is sorted and detached", func() {
				So(titles(board.Jobs()), ShouldNotBeEmpty)
			})
		})
	})
}

func TestKanbanBoard(t *testing.T) {
	ctx := context.Background()

	cards := []model.Candidate{
		{ID: "c1", Name: "Ada", Stage: model.StageApplied},
		{ID: "c2", Name: "Grace", Stage: model.StageScreen},
	}

	Convey("Given a kanban board", t, func() {
		Convey("Columns cover every stage, empty ones included", func() {
			board := client.NewKanbanBoard(&fakePatcher{}, cards)
			cols := board.Columns()
			So(cols, ShouldHaveLength, len(model.Stages()))
			So(cols[model.StageApplied], ShouldHaveLength, 1)
			So(cols[model.StageHired], ShouldBeEmpty)
		})

		Convey("When a card moves to another column and confirms", func() {
			board := client.NewKanbanBoard(&fakePatcher{}, cards)
			result := board.MoveToStage(ctx, "c1", model.StageTech)

			Convey("Then it appears in the target column immediately", func() {
				cols := board.Columns()
				So(cols[model.StageTech], ShouldHaveLength, 1)
				So(cols[model.StageApplied], ShouldBeEmpty)
			})

			Convey("Then it stays after confirmation", func() {
				So(<-result, ShouldBeNil)
				So(board.Columns()[model.StageTech], ShouldHaveLength, 1)
			})
		})

		Convey("When the stage patch fails", func() {
			boom := errors.New("service unavailable")
			board := client.NewKanbanBoard(&fakePatcher{err: boom}, cards)
			result := board.MoveToStage(ctx, "c1", model.StageTech)

			Convey("Then the card snaps back to its source column", func() {
				So(errors.Is(<-result, boom), ShouldBeTrue)
				cols := board.Columns()
				So(cols[model.StageApplied], ShouldHaveLength, 1)
				So(cols[model.StageTech], ShouldBeEmpty)
			})
		})

		Convey("Board state is detached from caller slices", func() {
			local := []model.Candidate{{ID: "x", Name: "X", Stage: model.StageApplied}}
			board := client.NewKanbanBoard(&fakePatcher{}, local)
			local[0].Stage = model.StageHired
			So(board.Columns()[model.StageApplied], ShouldHaveLength, 1)
		})
	})
}
