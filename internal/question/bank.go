package question

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bank is the immutable question catalog, partitioned by type at load time.
type Bank struct {
	mcq  []Question
	open []Question
}

// NewBank validates all questions and builds the type partitions.
func NewBank(questions []Question) (*Bank, error) {
	seen := make(map[string]bool, len(questions))
	b := &Bank{}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", errBadQuestion, q.ID)
		}
		seen[q.ID] = true
		switch q.Type {
		case TypeMultipleChoice:
			b.mcq = append(b.mcq, q)
		case TypeOpenEnded:
			b.open = append(b.open, q)
		}
	}
	return b, nil
}

type bankFile struct {
	Questions []Question `yaml:"questions"`
}

// LoadBank reads a question bank from a YAML file.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", path, err)
	}
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question bank %s: %w", path, err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("question bank %s: no questions", path)
	}
	b, err := NewBank(f.Questions)
	if err != nil {
		return nil, fmt.Errorf("question bank %s: %w", path, err)
	}
	return b, nil
}

// CountByType returns the partition sizes (multiple-choice, open-ended).
func (b *Bank) CountByType() (mcq, open int) {
	return len(b.mcq), len(b.open)
}
