package prompt

import "io"

// Script is a Prompter that replays a fixed sequence of responses.
// Each ReadLine or ReadSecret call consumes the next response; running
// past the end returns io.EOF. Used by tests and non-interactive
// automation.
type Script struct {
	Responses []string
	// Prompts records every prompt string shown, in order.
	Prompts []string

	next int
}

func (s *Script) ReadLine(prompt string) (string, error) {
	return s.take(prompt)
}

func (s *Script) ReadSecret(prompt string) (string, error) {
	return s.take(prompt)
}

func (s *Script) take(prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.next >= len(s.Responses) {
		return "", io.EOF
	}
	r := s.Responses[s.next]
	s.next++
	return r, nil
}
