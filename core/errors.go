package core

import (
	"fmt"
)

// NetworkError is a transport-level failure while talking to a metadata endpoint
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error requesting %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means a response body did not have the expected shape
type MalformedResponseError struct {
	URL    string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response from %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed response from %s: %s", e.URL, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

type VersionNotFoundError struct {
	ID string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found in the version manifest", e.ID)
}

// DownloadFailedError covers non-success statuses, transport errors and checksum
// mismatches of an artifact download.
type DownloadFailedError struct {
	URL    string
	Reason string
}

func (e *DownloadFailedError) Error() string {
	return fmt.Sprintf("download of %s failed: %s", e.URL, e.Reason)
}

type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error at %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type MalformedCoordinateError struct {
	Coordinate string
}

func (e *MalformedCoordinateError) Error() string {
	return fmt.Sprintf("malformed maven coordinate %q, expected group:artifact:version", e.Coordinate)
}

type LaunchFailedError struct {
	Reason string
	Err    error
}

func (e *LaunchFailedError) Error() string {
	return "failed to launch game: " + e.Reason
}

func (e *LaunchFailedError) Unwrap() error {
	return e.Err
}

// StageError tags a fatal pipeline error with the stage that produced it
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// WrapStage returns nil for a nil err
func WrapStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
