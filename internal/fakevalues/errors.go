package fakevalues

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnparsable means no normalization strategy could extract
	// candidates from the backend text.
	ErrBackendUnparsable = errors.New("fakevalues: backend response is unparsable")

	// ErrEmptyCandidateSet means the response decoded to zero candidates.
	ErrEmptyCandidateSet = errors.New("fakevalues: backend returned no candidates")
)

// MalformedKeyError reports a key that is not "<domain>.<property>".
// It signals caller misuse and is the only error Resolve returns.
type MalformedKeyError struct {
	Key    string
	Reason string
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("fakevalues: malformed key %q: %s", e.Key, e.Reason)
}

// TransportError wraps a backend failure: network, timeout, non-success
// status or a response the provider itself rejected.
type TransportError struct {
	Key string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fakevalues: fetch %q: %v", e.Key, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnparsableError carries the raw backend text that failed normalization.
// It matches ErrBackendUnparsable with errors.Is.
type UnparsableError struct {
	Raw string
}

func (e *UnparsableError) Error() string {
	const preview = 80
	raw := e.Raw
	if len(raw) > preview {
		raw = raw[:preview] + "..."
	}
	return fmt.Sprintf("%v: %q", ErrBackendUnparsable, raw)
}

func (e *UnparsableError) Unwrap() error { return ErrBackendUnparsable }
