package model

import "fmt"

// AcquisitionError wraps a failure to obtain PCM audio from an external
// source (file missing, network timeout, yt-dlp failure). Build records the
// item as failed and continues with the rest of the batch; Identify
// surfaces it to the caller.
type AcquisitionError struct {
	Source string
	Err    error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquiring audio from %q: %v", e.Source, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// DecodeError wraps a failure to parse a PCM container (malformed WAV,
// unsupported codec). Same skip/surface policy as AcquisitionError.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding audio from %q: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EmptyFingerprintError is not a true failure: it signals that a track or
// query produced zero peaks or zero hashes. Build skips the item with a
// log note. Identify returns an empty result set for a query that yields no
// hashes, and returns this error for zero-length input.
type EmptyFingerprintError struct {
	Source string
	Reason string
}

func (e *EmptyFingerprintError) Error() string {
	return fmt.Sprintf("%s: empty fingerprint (%s)", e.Source, e.Reason)
}

// StoreIOError wraps a backend storage failure. Identify and opening the
// index return it; Build records it against the failing item and continues
// with the rest of the batch.
type StoreIOError struct {
	Op  string
	Err error
}

func (e *StoreIOError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreIOError) Unwrap() error { return e.Err }

// SchemaMismatchError is returned when the parameters embedded in an
// existing index file differ from the ones the caller opened it with.
type SchemaMismatchError struct {
	Path string
	Diff string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("index %q was built with different fingerprint parameters (%s); rebuild or open with matching params", e.Path, e.Diff)
}

// UsageError signals caller misuse: missing required inputs, invalid
// arguments. Surfaced immediately, never retried or skipped.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }
