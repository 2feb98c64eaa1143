package anki

import "fmt"

// RemoteError is returned when AnkiConnect answers with a non-null
// error field. Transport-level failures (connection refused, malformed
// response, open circuit breaker) are returned as wrapped errors
// instead, so callers can tell the two apart.
type RemoteError struct {
	Action  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("anki-connect action %q failed: %s", e.Action, e.Message)
}
