package selector

import (
	"math/rand/v2"

	"github.com/kapu/movie-picker-go/internal/domain"
	"github.com/kapu/movie-picker-go/pkg/errors"
)

// Selector draws records uniformly at random. Each draw is independent of the
// previous ones; repeats are expected.
type Selector struct {
	rng *rand.Rand
}

// New returns a Selector using src, or the global generator when src is nil.
func New(src rand.Source) *Selector {
	if src == nil {
		return &Selector{}
	}
	return &Selector{rng: rand.New(src)}
}

// Pick returns one of records with probability 1/len(records).
func (s *Selector) Pick(records []domain.Movie) (domain.Movie, error) {
	if len(records) == 0 {
		return domain.Movie{}, errors.NewEmptySelectionError()
	}
	return records[s.index(len(records))], nil
}

func (s *Selector) index(n int) int {
	if s == nil || s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}
