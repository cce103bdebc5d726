package entropy

import (
	"math/rand/v2"

	random "github.com/mazen160/go-random"
)

// NonceLength is the amount of characters in a generated nonce.
const NonceLength = 32

// API is an abstraction over any code that potentially generates random values.
// This makes mocking/simulation testing much easier.
//
// note: fault injection point
type API interface {
	// IntN returns a uniformly distributed index in [0, n), n > 0.
	IntN(n int) int
	// Nonce returns a cryptographically random single-use string.
	Nonce() (string, error)
}

// StandardRandom picks indexes with math/rand/v2 and nonces with crypto grade randomness.
type StandardRandom struct{}

func NewStandardRandom() StandardRandom {
	return StandardRandom{}
}

func (StandardRandom) IntN(n int) int {
	return rand.IntN(n)
}

func (StandardRandom) Nonce() (string, error) {
	return random.String(NonceLength)
}

// Choice returns a uniformly chosen element of items, items must not be empty.
func Choice[T any](r API, items []T) T {
	return items[r.IntN(len(items))]
}
