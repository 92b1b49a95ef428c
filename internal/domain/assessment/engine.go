// Package assessment evaluates conditional visibility and validates
// submitted answers against a questionnaire schema. Both entry points are
// pure: schema and answers in, verdict out. The engine never touches
// storage; callers pull the schema and push the answers.
package assessment

import (
	"fmt"
	"strconv"

	"github.com/okian/talentflow/internal/domain/model"
)

// ValidationError describes the first constraint violated by an answer
// set. It always references the offending question.
type ValidationError struct {
	Reason     string
	QuestionID string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.QuestionID, e.Reason)
}

// Visible reports whether q should be shown for the given answers: true
// when q has no ShowIf, or when the answer recorded for ShowIf.QuestionID
// strictly equals ShowIf.Equals. Any other answer, including an absent
// one, hides the question. Hidden questions' answers are retained by the
// caller but ignored here.
func Visible(q model.Question, answers model.AnswerMap) bool {
	if q.ShowIf == nil {
		return true
	}
	return answers[q.ShowIf.QuestionID].Is(q.ShowIf.Equals)
}

// Validate walks sections in order and checks every visible question
// against its constraints, returning the first violation or nil. It does
// not collect all errors.
func Validate(a model.Assessment, answers model.AnswerMap) error {
	for q := range a.Questions {
		if !Visible(q, answers) {
			continue
		}
		if err := validateQuestion(q, answers[q.ID]); err != nil {
			return err
		}
	}
	return nil
}

func validateQuestion(q model.Question, ans model.Answer) error {
	if q.Required && ans.IsEmpty() {
		return &ValidationError{Reason: "missing required", QuestionID: q.ID}
	}
	if ans.IsEmpty() {
		return nil
	}

	switch q.Kind {
	case model.KindShort, model.KindLong:
		if q.MaxLength != nil && len(ans.Value) > *q.MaxLength {
			return &ValidationError{
				Reason:     fmt.Sprintf("longer than %d characters", *q.MaxLength),
				QuestionID: q.ID,
			}
		}
	case model.KindNumber:
		n, err := strconv.ParseFloat(ans.Value, 64)
		if err != nil {
			return &ValidationError{Reason: "not a number", QuestionID: q.ID}
		}
		if q.Min != nil && n < *q.Min {
			return &ValidationError{
				Reason:     fmt.Sprintf("below minimum %v", *q.Min),
				QuestionID: q.ID,
			}
		}
		if q.Max != nil && n > *q.Max {
			return &ValidationError{
				Reason:     fmt.Sprintf("above maximum %v", *q.Max),
				QuestionID: q.ID,
			}
		}
	case model.KindSingle, model.KindMulti, model.KindFile:
		// No value constraints beyond required.
	}
	return nil
}
