package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrMissingTitle        = errors.New("missing title")
	ErrMissingCandidateID  = errors.New("missing candidateId")
	ErrUnknownStage        = errors.New("unknown stage")
	ErrUnknownStatus       = errors.New("unknown status")
	ErrUnknownQuestionKind = errors.New("unknown question type")
)
