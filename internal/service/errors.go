package service

import "fmt"

// InvalidPlatformError reports a reference to a platform id the registry does not know.
type InvalidPlatformError struct {
	Platform string
}

func (e *InvalidPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q", e.Platform)
}

// NotFoundError reports a post id missing from the bucket an operation expects it in.
type NotFoundError struct {
	PostID string
	Bucket string
}

func (e *NotFoundError) Error() string {
	if e.Bucket == "" {
		return fmt.Sprintf("post %s not found", e.PostID)
	}
	return fmt.Sprintf("post %s not found in %s bucket", e.PostID, e.Bucket)
}

type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type ContentGenerationError struct {
	Theme string
	Err   error
}

func (e *ContentGenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("content generation for theme %s produced no content", e.Theme)
	}
	return fmt.Sprintf("content generation for theme %s failed: %v", e.Theme, e.Err)
}

func (e *ContentGenerationError) Unwrap() error { return e.Err }

// TransportError is a per-platform dispatch failure. Timeouts end up here too.
type TransportError struct {
	Platform string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport to %s failed: %v", e.Platform, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
