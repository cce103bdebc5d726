package entropy

import "fmt"

// Sequence is a deterministic API that replays the given values in order,
// wrapping around when it runs out. Indexes are reduced modulo n.
type Sequence struct {
	Indexes []int
	Nonces  []string

	nextIndex int
	nextNonce int
}

func (s *Sequence) IntN(n int) int {
	if len(s.Indexes) == 0 {
		return 0
	}
	value := s.Indexes[s.nextIndex%len(s.Indexes)]
	s.nextIndex++
	return value % n
}

func (s *Sequence) Nonce() (string, error) {
	if len(s.Nonces) == 0 {
		return "", fmt.Errorf("sequence has no nonces")
	}
	value := s.Nonces[s.nextNonce%len(s.Nonces)]
	s.nextNonce++
	return value, nil
}
