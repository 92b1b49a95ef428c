package assessment

import (
	"errors"

	"github.com/google/uuid"

	"github.com/okian/talentflow/internal/domain/model"
)

// Builder errors.
var (
	ErrSectionNotFound  = errors.New("section not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionPatch carries the fields a builder edit wants to replace. Nil
// fields are left untouched; the question's id and kind never change.
type QuestionPatch struct {
	Label      *string
	Required   *bool
	Options    *[]model.AnswerOption
	Min        *float64
	Max        *float64
	MaxLength  *int
	ShowIf     *model.ShowIf
	DropShowIf bool
}

// AppendSection appends a new titled section and returns its id.
func AppendSection(a *model.Assessment, title string) string {
	s := model.Section{ID: uuid.NewString(), Title: title}
	a.Sections = append(a.Sections, s)
	return s.ID
}

// AppendQuestion appends q to the section's question list, assigning an
// id when q carries none.
func AppendQuestion(a *model.Assessment, sectionID string, q model.Question) (string, error) {
	for i := range a.Sections {
		if a.Sections[i].ID != sectionID {
			continue
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		a.Sections[i].Questions = append(a.Sections[i].Questions, q)
		return q.ID, nil
	}
	return "", ErrSectionNotFound
}

// PatchQuestion replaces only the patched fields of the identified
// question, preserving id, kind, and everything unspecified.
func PatchQuestion(a *model.Assessment, questionID string, p QuestionPatch) error {
	for si := range a.Sections {
		for qi := range a.Sections[si].Questions {
			q := &a.Sections[si].Questions[qi]
			if q.ID != questionID {
				continue
			}
			if p.Label != nil {
				q.Label = *p.Label
			}
			if p.Required != nil {
				q.Required = *p.Required
			}
			if p.Options != nil {
				q.Options = *p.Options
			}
			if p.Min != nil {
				q.Min = p.Min
			}
			if p.Max != nil {
				q.Max = p.Max
			}
			if p.MaxLength != nil {
				q.MaxLength = p.MaxLength
			}
			if p.DropShowIf {
				q.ShowIf = nil
			} else if p.ShowIf != nil {
				q.ShowIf = p.ShowIf
			}
			return nil
		}
	}
	return ErrQuestionNotFound
}
