package models

// ResultKind tags a SubmissionResult.
type ResultKind string

const (
	ResultSuccess  ResultKind = "success"
	ResultConflict ResultKind = "conflict"
	ResultFailure  ResultKind = "failure"
)

// Messages shown when the remote side gives us nothing better.
const (
	MsgUnexpectedError = "Something unexpected just happened. Please, contact support"
	MsgUserCreated     = "User successfully created"
)

// SubmissionResult is the classified outcome of one signup attempt.
// Field is only set for conflicts.
type SubmissionResult struct {
	Kind    ResultKind `json:"kind"`
	Field   FieldKey   `json:"field,omitempty"`
	Message string     `json:"message"`
}

// Success means the account was created.
func Success(message string) SubmissionResult {
	return SubmissionResult{Kind: ResultSuccess, Message: message}
}

// Conflict means the account identifier in field is already taken.
func Conflict(field FieldKey, message string) SubmissionResult {
	return SubmissionResult{Kind: ResultConflict, Field: field, Message: message}
}

// Failure covers transport errors, server errors and undecodable input.
func Failure(message string) SubmissionResult {
	return SubmissionResult{Kind: ResultFailure, Message: message}
}

// Payload is the input of a submission strategy: the form values for
// password signups, or the opaque identity-provider token for Google signups.
type Payload struct {
	Values     FormValues
	Credential string
}
