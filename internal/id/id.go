package id

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrExhausted is returned by Next once math.MaxInt has been handed out.
var ErrExhausted = errors.New("transaction IDs exhausted")

// Sequence hands out monotonically increasing record IDs starting at 1.
// IDs are never handed out twice, even after the record they named is gone.
type Sequence struct {
	last int
}

// Next returns the next unused ID.
func (s *Sequence) Next() (int, error) {
	if s.last == math.MaxInt {
		return 0, ErrExhausted
	}
	s.last++
	return s.last, nil
}

// Observe records an ID assigned elsewhere (e.g. seed data) so that Next
// never returns it.
func (s *Sequence) Observe(id int) {
	if id > s.last {
		s.last = id
	}
}

// Last returns the most recently issued or observed ID, 0 if none.
func (s *Sequence) Last() int {
	return s.last
}

// Format returns a display ID like "#12".
func Format(id int) string {
	return "#" + strconv.Itoa(id)
}

// Parse accepts "12" or "#12" and returns 12.
func Parse(s string) (int, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction ID %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid transaction ID %q: must be positive", s)
	}
	return n, nil
}
