// Package quiz provides chance-card questions and the question bank that
// serves them to a run.
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuestion is returned when a question cannot be shown on a card.
var ErrInvalidQuestion = errors.New("quiz: invalid question")

// MaxChoices is the number of answer keys the card can offer.
const MaxChoices = 4

// Question is a single multiple-choice prompt.
type Question struct {
	Prompt       string   `yaml:"prompt"`
	Choices      []string `yaml:"choices"`
	CorrectIndex int      `yaml:"correct"`
	Fact         string   `yaml:"fact,omitempty"`
}

// Validate reports whether the question has a prompt, 2-4 non-empty
// choices and a correct index inside them.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Choices) < 2 || len(q.Choices) > MaxChoices {
		return fmt.Errorf("%w: %q has %d choices, want 2-%d", ErrInvalidQuestion, q.Prompt, len(q.Choices), MaxChoices)
	}
	for i, c := range q.Choices {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("%w: %q choice %d is empty", ErrInvalidQuestion, q.Prompt, i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return fmt.Errorf("%w: %q correct index %d out of range", ErrInvalidQuestion, q.Prompt, q.CorrectIndex)
	}
	return nil
}

// IsCorrect returns true if choice is the correct answer.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

// IsZero reports whether q is the empty question.
func (q Question) IsZero() bool {
	return q.Prompt == "" && len(q.Choices) == 0
}
