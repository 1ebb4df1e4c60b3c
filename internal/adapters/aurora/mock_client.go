package aurora

import "context"

// MockUpdate records one UpdateRecord call.
type MockUpdate struct {
	URL     string
	Payload map[string]any
}

// MockClient is an in-memory WorkflowClient used by routine tests.
type MockClient struct {
	Updates  []MockUpdate
	FailWith error
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) UpdateRecord(ctx context.Context, url string, payload map[string]any) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.Updates = append(m.Updates, MockUpdate{URL: url, Payload: payload})
	return nil
}
