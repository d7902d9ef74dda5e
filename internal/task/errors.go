package task

import "fmt"

// UploadReadError reports a file whose content could not be read or parsed.
// The upload is aborted and no FileRecord is created.
type UploadReadError struct {
	Name string
	Err  error
}

func (e *UploadReadError) Error() string {
	return fmt.Sprintf("failed to read upload %q: %v", e.Name, e.Err)
}

func (e *UploadReadError) Unwrap() error { return e.Err }

// NetworkError reports a failed task-start or poll request. There is no
// automatic retry; the task is simply marked not processing.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
