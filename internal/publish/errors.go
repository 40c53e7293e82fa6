// File: internal/publish/errors.go
package publish

import "fmt"

// InteractionError wraps a failure from a page interaction at a named
// pipeline stage.
type InteractionError struct {
	Platform string
	Stage    string
	Err      error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("%s: %s stage failed: %v", e.Platform, e.Stage, e.Err)
}

func (e *InteractionError) Unwrap() error { return e.Err }
