package archivesspace

import (
	"context"
	"fmt"

	"archival-transform-service/internal/ports"
)

// MockClient is an in-memory DescriptionRepository used by routine and
// handler tests. It records every created record and serves updates
// against an internal map keyed by URI.
type MockClient struct {
	Created map[ports.RecordKind][]any
	Records map[string]map[string]any
	Updated map[string]any

	NextNumber int
	FailWith   error

	sequence int
}

func NewMockClient() *MockClient {
	return &MockClient{
		Created:    make(map[ports.RecordKind][]any),
		Records:    make(map[string]map[string]any),
		Updated:    make(map[string]any),
		NextNumber: 1,
	}
}

func (m *MockClient) Create(ctx context.Context, kind ports.RecordKind, record any) (string, error) {
	if m.FailWith != nil {
		return "", m.FailWith
	}

	m.sequence++
	m.Created[kind] = append(m.Created[kind], record)

	var uri string
	switch kind {
	case ports.KindAccession:
		uri = fmt.Sprintf("/repositories/2/accessions/%d", m.sequence)
	case ports.KindDigitalObject:
		uri = fmt.Sprintf("/repositories/2/digital_objects/%d", m.sequence)
	default:
		uri = fmt.Sprintf("/repositories/2/archival_objects/%d", m.sequence)
	}

	m.Records[uri] = map[string]any{"uri": uri, "instances": []any{}}
	return uri, nil
}

func (m *MockClient) Get(ctx context.Context, uri string) (map[string]any, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	r, ok := m.Records[uri]
	if !ok {
		return nil, &ports.RemoteError{System: "archivesspace", Status: 404, Body: "not found"}
	}
	return r, nil
}

func (m *MockClient) Update(ctx context.Context, uri string, record any) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.Updated[uri] = record
	return nil
}

func (m *MockClient) NextAccessionNumber(ctx context.Context) (string, string, error) {
	if m.FailWith != nil {
		return "", "", m.FailWith
	}

	return "2026", fmt.Sprintf("%03d", m.NextNumber), nil
}
