package harness

import "sync/atomic"

// Sink consumes operation results so the compiler cannot prove them dead.
// A Sink is owned by one worker; fold it into a shared total with Drain.
type Sink struct {
	acc uint64
}

// Consume folds b into the sink.
func (s *Sink) Consume(b []byte) {
	s.acc += uint64(len(b))
	if len(b) > 0 {
		s.acc ^= uint64(b[len(b)-1]) << (s.acc & 31)
	}
}

// Drain adds the sink's accumulator to total and resets the sink.
func (s *Sink) Drain(total *atomic.Uint64) {
	total.Add(s.acc)
	s.acc = 0
}
