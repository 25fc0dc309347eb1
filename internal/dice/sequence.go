package dice

import "sync"

// Sequence replays fixed rolls in order and wraps around at the end.
// It is used for deterministic replays of recorded sessions and in tests.
type Sequence struct {
	mu    sync.Mutex
	rolls []int
	i     int
}

func NewSequence(rolls ...int) *Sequence {
	return &Sequence{rolls: rolls}
}

// D100 returns the next recorded value. An empty sequence returns 0,
// which the resolver rejects as an invalid roll.
func (s *Sequence) D100() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rolls) == 0 {
		return 0
	}
	v := s.rolls[s.i%len(s.rolls)]
	s.i++
	return v
}
