package digits

//go:generate mockgen -package=mocks -destination=mocks/mock_shuffler.go github.com/hoopsquares/squares/internal/digits Shuffler

import (
	"math/rand"
	"time"

	"github.com/hoopsquares/squares/internal/models"
)

// Shuffler produces digit permutations for the grid axes
type Shuffler interface {
	// Permutation returns the digits 0-9 in random order
	Permutation() []int
}

// Config for the default shuffler
type Config struct {
	// Optional seed for testing
	Seed int64
}

// DefaultShuffler implements Shuffler using a uniform Fisher-Yates shuffle
type DefaultShuffler struct {
	random *rand.Rand
}

// New creates a new digit shuffler
func New(cfg *Config) *DefaultShuffler {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &DefaultShuffler{
		random: rand.New(source),
	}
}

// Permutation returns a fresh permutation of the digits 0-9
func (s *DefaultShuffler) Permutation() []int {
	perm := Identity()
	for i := len(perm) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Identity returns the digits 0-9 in natural order
func Identity() []int {
	perm := make([]int, models.GridSize)
	for i := range perm {
		perm[i] = i
	}
	return perm
}
