package domain

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateFlight = errors.New("flight already exists")
	ErrProvider        = errors.New("flight search provider error")
)

// ValidationError carries every problem found in a request, in the order the
// fields were checked.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, " ")
}
