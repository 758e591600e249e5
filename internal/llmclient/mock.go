package llmclient

import "context"

// MockClient is a scripted Client for tests.
type MockClient struct {
	Reply string
	Err   error
	// Last records the most recent request for assertions.
	Last Request
	// Calls counts Complete invocations.
	Calls int
}

func (m *MockClient) Name() string { return "Mock" }
func (m *MockClient) Close() error { return nil }

func (m *MockClient) Complete(_ context.Context, r Request) (string, error) {
	m.Calls++
	m.Last = r
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}
