package question

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInsufficientQuestions is returned when a type partition is smaller than
// the requested sample size. Session creation is impossible until the bank
// is reconfigured.
var ErrInsufficientQuestions = errors.New("insufficient questions in bank")

// Sample draws a personalized question sequence: a uniform random sample
// without replacement from each type partition. The group ordering is fixed:
// all multiple-choice questions first, then all open-ended ones.
func (b *Bank) Sample(mcqCount, openCount int) ([]Question, error) {
	if mcqCount < 0 || openCount < 0 {
		return nil, fmt.Errorf("negative sample size")
	}
	if len(b.mcq) < mcqCount {
		return nil, fmt.Errorf("%w: want %d multiple_choice, have %d", ErrInsufficientQuestions, mcqCount, len(b.mcq))
	}
	if len(b.open) < openCount {
		return nil, fmt.Errorf("%w: want %d open_ended, have %d", ErrInsufficientQuestions, openCount, len(b.open))
	}

	out := make([]Question, 0, mcqCount+openCount)
	out = append(out, sampleFrom(b.mcq, mcqCount)...)
	out = append(out, sampleFrom(b.open, openCount)...)
	return out, nil
}

// sampleFrom shuffles a copy of the partition and takes the first n.
func sampleFrom(pool []Question, n int) []Question {
	cp := make([]Question, len(pool))
	copy(cp, pool)
	rand.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
	return cp[:n]
}
