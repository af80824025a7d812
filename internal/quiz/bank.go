package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyBank is returned when a bank file contains no questions.
var ErrEmptyBank = errors.New("quiz: question bank is empty")

//go:embed questions.yaml
var defaultQuestionsYAML []byte

type bankFile struct {
	Questions []Question `yaml:"questions"`
}

// Bank serves questions in random order without repeating the previous one.
type Bank struct {
	questions []Question
	rng       *rand.Rand
	last      int
}

// NewBank validates questions and creates a bank drawing with the given seed.
func NewBank(questions []Question, seed int64) (*Bank, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Bank{
		questions: qs,
		rng:       rand.New(rand.NewSource(seed)),
		last:      -1,
	}, nil
}

// LoadBank reads a YAML bank from path, or the embedded bank when path is empty.
func LoadBank(path string, seed int64) (*Bank, error) {
	data := defaultQuestionsYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("quiz: cannot read bank %s: %w", path, err)
		}
	}
	qs, err := ParseBank(data)
	if err != nil {
		return nil, err
	}
	return NewBank(qs, seed)
}

// ParseBank decodes a YAML document with a top-level questions list.
func ParseBank(data []byte) ([]Question, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("quiz: cannot parse bank: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, ErrEmptyBank
	}
	return f.Questions, nil
}

// NextQuestion draws a question. With more than one question in the bank
// the same question is never drawn twice in a row.
func (b *Bank) NextQuestion() Question {
	n := len(b.questions)
	i := b.rng.Intn(n)
	if n > 1 && i == b.last {
		i = (i + 1 + b.rng.Intn(n-1)) % n
	}
	b.last = i
	return b.questions[i]
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns a copy of every question in bank order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}
