package service

import "slices"

// OutcomeKind tags the result of a form submission.
type OutcomeKind int

const (
	// OutcomeNavigate means the submission succeeded; the caller must redirect to Outcome.Redirect.
	OutcomeNavigate OutcomeKind = iota + 1
	// OutcomeInvalid means validation failed and nothing was sent. Errors is populated.
	OutcomeInvalid
	// OutcomeRemoteFailure means the remote API refused or could not be reached. Message is populated.
	OutcomeRemoteFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNavigate:
		return "navigate"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeRemoteFailure:
		return "remote_failure"
	}
	return "unknown"
}

// Outcome is the tagged result every form submission returns. Navigation is a
// plain value here, so failure handling can never swallow a redirect.
type Outcome struct {
	Kind     OutcomeKind
	Redirect string
	Errors   FieldErrors
	Message  string
}

const invalidMessage = "Missing or invalid fields."

func Navigate(path string) Outcome {
	return Outcome{Kind: OutcomeNavigate, Redirect: path}
}

func Invalid(errs FieldErrors) Outcome {
	return Outcome{Kind: OutcomeInvalid, Errors: errs, Message: invalidMessage}
}

func RemoteFailure(message string) Outcome {
	return Outcome{Kind: OutcomeRemoteFailure, Message: message}
}

// FieldErrors maps a form field name to its messages in the order they were found.
type FieldErrors map[string][]string

// Add appends msg to field unless it is already listed.
func (fe FieldErrors) Add(field, msg string) {
	if slices.Contains(fe[field], msg) {
		return
	}
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }
