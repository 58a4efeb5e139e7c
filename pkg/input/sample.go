package input

import (
	"sync/atomic"

	"github.com/go-ember/ember/pkg/graphics"
)

// SampleSlot is a single-sample mailbox between a touch driver (possibly
// running in interrupt context) and the engine's processing pass.
//
// The whole sample is packed into one uint64 so Store and Take are single
// atomic operations: the writer never blocks and the reader never observes
// a torn sample. Later samples overwrite earlier ones; the engine drains
// at most one sample per pass, which matches the latest-wins behavior of
// polling touch controllers.
type SampleSlot struct {
	packed atomic.Uint64
}

const samplePressedBit = 1 << 32

// Store publishes a new sample. Safe to call from any execution context,
// assuming a single writer (one touch driver).
func (s *SampleSlot) Store(sample PointerSample) {
	v := uint64(uint16(int16(sample.Position.X)))<<16 | uint64(uint16(int16(sample.Position.Y)))
	if sample.Pressed {
		v |= samplePressedBit
	}
	// Bump the sequence so identical coordinates still register as a new sample.
	seq := (s.packed.Load() >> 40) + 1
	v |= (seq & 0xFFFFFF) << 40
	s.packed.Store(v)
}

// Take returns the latest sample and whether it is new since the last Take.
// Only the engine's cooperative context may call Take.
func (s *SampleSlot) Take(lastSeq *uint32) (PointerSample, bool) {
	v := s.packed.Load()
	seq := uint32((v >> 40) & 0xFFFFFF)
	if seq == *lastSeq {
		return PointerSample{}, false
	}
	*lastSeq = seq
	return PointerSample{
		Position: graphics.Point{
			X: int(int16(uint16(v >> 16))),
			Y: int(int16(uint16(v))),
		},
		Pressed: v&samplePressedBit != 0,
	}, true
}
