package handlers

import (
	"fmt"
	"net/http"
)

// failureKind classifies why a webhook delivery was rejected. The kind alone
// decides the HTTP status; status is never inferred from message text.
type failureKind string

const (
	// no signature header on the request
	failAuthMissing failureKind = "authentication_missing"
	// signature present but does not match the raw body
	failAuthInvalid failureKind = "authentication_invalid"
	// the request body could not be read or parsed; happens before any
	// provider call
	failMalformed failureKind = "malformed_request"
	// provider re-verification errored or did not confirm success
	failVerification failureKind = "verification_failed"
	// the order update (or the downstream paid event) did not persist
	failPersistence failureKind = "persistence_failed"
)

// webhookFailure is the typed failure result for a delivery. The message is
// safe to return to the caller; the wrapped err (with internal detail) is
// only ever logged.
type webhookFailure struct {
	kind failureKind
	msg  string
	err  error
}

func (f *webhookFailure) Error() string {
	if f.err != nil {
		return fmt.Sprintf("%s: %s: %v", f.kind, f.msg, f.err)
	}
	return fmt.Sprintf("%s: %s", f.kind, f.msg)
}

func (f *webhookFailure) status() int {
	switch f.kind {
	case failAuthMissing:
		return http.StatusUnauthorized
	case failAuthInvalid:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func failure(kind failureKind, msg string, err error) *webhookFailure {
	return &webhookFailure{kind: kind, msg: msg, err: err}
}
