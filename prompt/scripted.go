package prompt

import (
	"fmt"
	"sync"
)

// Scripted answers prompts from a fixed list, in order.
// It never touches the terminal, which makes it the prompter for tests and
// for non-interactive runs (--yes).
type Scripted struct {
	mu      sync.Mutex
	answers []string
	asked   []string
}

func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

func (s *Scripted) next(message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, message)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("%w for prompt %q", ErrNoInput, message)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

// Asked returns the prompts shown so far
func (s *Scripted) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.asked))
	copy(out, s.asked)
	return out
}

func (s *Scripted) Confirm(message string) (bool, error) {
	a, err := s.next(message)
	if err != nil {
		return false, err
	}
	return ParseYesNo(a)
}

// Select takes the answer as the 1-based menu number, "0" exits
func (s *Scripted) Select(message string, items []string) (int, error) {
	a, err := s.next(message)
	if err != nil {
		return 0, err
	}
	var n int
	if _, err := fmt.Sscanf(a, "%d", &n); err != nil {
		return 0, fmt.Errorf("scripted selection %q is not an integer", a)
	}
	if n == 0 {
		return 0, ErrMenuExit
	}
	if n < 0 || n > len(items) {
		return 0, fmt.Errorf("selection %d is not in the menu", n)
	}
	return n - 1, nil
}

func (s *Scripted) Secret(message string) (string, error) {
	return s.next(message)
}
