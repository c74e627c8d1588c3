package services

import "errors"

// OutcomeKind tags the result of a pipeline operation for callers.
type OutcomeKind string

const (
	OutcomeSuccess    OutcomeKind = "success"
	OutcomeNotFound   OutcomeKind = "not_found"
	OutcomeTransient  OutcomeKind = "transient_error"
	OutcomeStorage    OutcomeKind = "storage_error"
	OutcomeValidation OutcomeKind = "validation_error"
)

// Outcome is the definite result reported for every operation.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message"`
	Count   int         `json:"count,omitempty"`
}

// OK reports whether the outcome represents success.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Success builds a success outcome. Count is the number of affected records
// for bulk operations and zero otherwise.
func Success(message string, count int) Outcome {
	return Outcome{Kind: OutcomeSuccess, Message: message, Count: count}
}

// Failure converts an error into an outcome using its marker.
func Failure(err error) Outcome {
	if err == nil {
		return Outcome{Kind: OutcomeSuccess}
	}
	return Outcome{Kind: OutcomeKindOf(err), Message: err.Error()}
}

// OutcomeKindOf maps an error chain to the outcome kind shown to callers.
// Unmarked errors are treated as transient.
func OutcomeKindOf(err error) OutcomeKind {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return OutcomeValidation
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrStorage):
		return OutcomeStorage
	default:
		return OutcomeTransient
	}
}
