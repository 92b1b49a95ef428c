package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// QuestionKind enumerates the six question variants.
type QuestionKind string

// Question kinds.
const (
	KindShort  QuestionKind = "short"
	KindLong   QuestionKind = "long"
	KindSingle QuestionKind = "single"
	KindMulti  QuestionKind = "multi"
	KindNumber QuestionKind = "number"
	KindFile   QuestionKind = "file"
)

// ValidQuestionKind reports whether k is a known question kind.
func ValidQuestionKind(k QuestionKind) bool {
	switch k {
	case KindShort, KindLong, KindSingle, KindMulti, KindNumber, KindFile:
		return true
	}
	return false
}

// AnswerOption is one selectable choice for single/multi questions.
type AnswerOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ShowIf is a single equality-predicate visibility dependency: the owning
// question is shown iff the answer recorded for QuestionID equals Equals.
type ShowIf struct {
	QuestionID string `json:"questionId"`
	Equals     string `json:"equals"`
}

// Question is a kind-tagged schema node. Only the constraint fields
// relevant to Kind are meaningful: Options for single/multi, Min/Max for
// number, MaxLength for short/long.
type Question struct {
	ID        string         `json:"id"`
	Kind      QuestionKind   `json:"type"`
	Label     string         `json:"label"`
	Required  bool           `json:"required"`
	Options   []AnswerOption `json:"options,omitempty"`
	Min       *float64       `json:"min,omitempty"`
	Max       *float64       `json:"max,omitempty"`
	MaxLength *int           `json:"maxLength,omitempty"`
	ShowIf    *ShowIf        `json:"showIf,omitempty"`
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	if q.Min != nil {
		v := *q.Min
		q.Min = &v
	}
	if q.Max != nil {
		v := *q.Max
		q.Max = &v
	}
	if q.MaxLength != nil {
		v := *q.MaxLength
		q.MaxLength = &v
	}
	if q.ShowIf != nil {
		v := *q.ShowIf
		q.ShowIf = &v
	}
	return q
}

// Section groups an ordered run of questions under a title.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	qs := make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		qs[i] = q.Clone()
	}
	s.Questions = qs
	return s
}

// Assessment is the per-job questionnaire schema, keyed by job id.
type Assessment struct {
	JobID    string    `json:"jobId"`
	Sections []Section `json:"sections"`
}

// Clone returns a deep copy of the assessment.
func (a Assessment) Clone() Assessment {
	ss := make([]Section, len(a.Sections))
	for i, s := range a.Sections {
		ss[i] = s.Clone()
	}
	a.Sections = ss
	return a
}

// Questions yields all questions in answer-collection order: sections in
// sequence, questions in sequence within each section.
func (a Assessment) Questions(yield func(Question) bool) {
	for _, s := range a.Sections {
		for _, q := range s.Questions {
			if !yield(q) {
				return
			}
		}
	}
}

// Answer is a submitted value for one question: a plain string (short,
// long, single, file, numeric string for number) or a string list (multi).
type Answer struct {
	Value  string
	Values []string
}

// IsEmpty reports whether the answer carries no value.
func (a Answer) IsEmpty() bool {
	return a.Value == "" && len(a.Values) == 0
}

// Is reports strict string equality against a scalar answer. A list
// answer never equals a string.
func (a Answer) Is(s string) bool {
	return a.Values == nil && a.Value == s
}

// StringAnswer builds a scalar answer.
func StringAnswer(v string) Answer { return Answer{Value: v} }

// ListAnswer builds a multi-choice answer.
func ListAnswer(vs ...string) Answer { return Answer{Values: vs} }

// MarshalJSON renders the answer as a string or a string array.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Values != nil {
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts a string, a string array, or a bare number
// (coerced to its decimal string form).
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Answer{Value: s}
		return nil
	}
	var vs []string
	if err := json.Unmarshal(data, &vs); err == nil {
		*a = Answer{Values: vs}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Answer{Value: strconv.FormatFloat(n, 'f', -1, 64)}
		return nil
	}
	return fmt.Errorf("answer must be a string, string array, or number: %s", data)
}

// AnswerMap maps question ids to submitted answers.
type AnswerMap map[string]Answer

// Clone returns a copy of the map with cloned list values.
func (m AnswerMap) Clone() AnswerMap {
	if m == nil {
		return nil
	}
	out := make(AnswerMap, len(m))
	for k, v := range m {
		v.Values = slices.Clone(v.Values)
		out[k] = v
	}
	return out
}
