package ports

import "context"

// Port: a boundary for reporting transformation outcomes back to the
// originating workflow system.
type WorkflowClient interface {
	// Patch the workflow-system record named by url with the given
	// fields. The url's host is ignored; only its trailing path is
	// used against the configured base URL.
	UpdateRecord(ctx context.Context, url string, payload map[string]any) error
}
