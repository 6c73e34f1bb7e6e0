package llm

import "context"

// Mock is a scripted Client for tests and local runs without credentials.
// When Fn is set it decides the reply per prompt; otherwise Replies are
// returned in order, repeating the last one, and Reply is the single-shot
// fallback.
type Mock struct {
	Reply   string
	Replies []string
	Fn      func(prompt string) (string, error)

	Prompts []string
	calls   int
}

func (m *Mock) Generate(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	defer func() { m.calls++ }()
	if m.Fn != nil {
		return m.Fn(prompt)
	}
	if len(m.Replies) > 0 {
		i := m.calls
		if i >= len(m.Replies) {
			i = len(m.Replies) - 1
		}
		return m.Replies[i], nil
	}
	return m.Reply, nil
}
