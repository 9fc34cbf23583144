package random

import "math/rand"

//go:generate mockgen -package=mocks -destination=mocks/mock_random.go github.com/archerylive/shootlive/internal/common/random Source

// Source produces the randomness used for join code generation
type Source interface {
	// Intn returns a non-negative random int in [0, n)
	Intn(n int) int
}

// DefaultSource implements the Source interface using math/rand

type DefaultSource struct{}

func New() *DefaultSource {
	return &DefaultSource{}
}

// Intn returns a non-negative random int in [0, n)
func (s *DefaultSource) Intn(n int) int {
	return rand.Intn(n)
}
