package ports

import "fmt"

// RemoteError reports a non-2xx response from an external system.
type RemoteError struct {
	System string
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.System, e.Status, e.Body)
}
