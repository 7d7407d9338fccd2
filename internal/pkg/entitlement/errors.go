package entitlement

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies failures talking to the entitlement provider.
type FetchErrorKind int

const (
	// KindNetwork covers transport failures and non-2xx responses.
	KindNetwork FetchErrorKind = iota
	// KindRejected means the provider was reachable but answered success=false.
	KindRejected
	// KindParse means the provider answered with an unusable payload.
	KindParse
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindParse:
		return "parse"
	default:
		return "network"
	}
}

// FetchError is the typed failure surfaced by coordinator fetch paths.
type FetchError struct {
	Kind    FetchErrorKind
	Op      string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("entitlement %s: %s failure: %s", e.Op, e.Kind, msg)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ToggleError wraps any failure during the optimistic journal-lock toggle.
// By the time it is returned the in-memory flag has been rolled back.
type ToggleError struct {
	Err error
}

func (e *ToggleError) Error() string {
	return "journal lock toggle failed: " + e.Err.Error()
}

func (e *ToggleError) Unwrap() error {
	return e.Err
}

// IsRejected reports whether err is an application-level rejection rather
// than a transport problem.
func IsRejected(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindRejected
}
