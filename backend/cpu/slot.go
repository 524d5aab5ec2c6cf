package cpu

import (
	"sync/atomic"

	"github.com/luisdiaz1997/gojax/kernel"
)

// alignment is the buffer rounding contract from spec.md §4.5.
const alignment = 64

// slot is this backend's concrete kernel.Slot: a byte buffer plus an
// atomic reference count. freed guards against use-after-free once the
// count reaches zero.
type slot struct {
	buf     []byte
	refs    atomic.Int32
	freed   atomic.Bool
}

func (s *slot) slotTag() {}

func roundUp64(n int64) int64 {
	if n <= 0 {
		return alignment
	}
	return (n + alignment - 1) / alignment * alignment
}

func newSlot(sizeBytes int64, initialData []byte) (*slot, error) {
	if initialData != nil && int64(len(initialData)) != sizeBytes {
		return nil, ErrDataLengthMismatch
	}
	buf := make([]byte, sizeBytes, roundUp64(sizeBytes))
	if initialData != nil {
		copy(buf, initialData)
	}
	s := &slot{buf: buf}
	s.refs.Store(1)
	return s, nil
}

func asSlot(s kernel.Slot) (*slot, error) {
	cs, ok := s.(*slot)
	if !ok {
		return nil, ErrWrongSlotType
	}
	return cs, nil
}
