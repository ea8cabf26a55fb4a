// Package mmio models the memory-mapped windows through which the mailbox
// driver reaches its hardware block: a small control register window and a
// larger payload RAM window.
package mmio

import (
	"errors"
	"sync"
)

// ErrOutOfRange reports an access or mapping beyond the end of a storage.
var ErrOutOfRange = errors.New("mmio: access beyond storage capacity")

// A Storage holds the bytes of a device address space.
//
// Storage allocates lazily in fixed-size units so a sparse address space
// with a few small device windows does not cost its full capacity in host
// memory. Accesses are serialized internally: caller context and interrupt
// context reach the same storage through disjoint windows.
type Storage struct {
	mu       sync.Mutex
	unitSize uint64
	capacity uint64
	units    map[uint64][]byte
}

// NewStorage creates a Storage covering capacity bytes.
func NewStorage(capacity uint64) *Storage {
	return &Storage{
		unitSize: 4096,
		capacity: capacity,
		units:    make(map[uint64][]byte),
	}
}

// Capacity returns the number of addressable bytes.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) unitFor(addr uint64) ([]byte, error) {
	if addr >= s.capacity {
		return nil, ErrOutOfRange
	}

	base := addr - addr%s.unitSize
	unit, ok := s.units[base]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.units[base] = unit
	}

	return unit, nil
}

// Read copies n bytes starting at addr out of the storage.
func (s *Storage) Read(addr, n uint64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if addr+n > s.capacity {
		return nil, ErrOutOfRange
	}

	out := make([]byte, n)
	done := uint64(0)

	for done < n {
		curr := addr + done
		unit, err := s.unitFor(curr)
		if err != nil {
			return nil, err
		}

		inUnit := curr % s.unitSize
		chunk := s.unitSize - inUnit
		if n-done < chunk {
			chunk = n - done
		}

		copy(out[done:done+chunk], unit[inUnit:inUnit+chunk])
		done += chunk
	}

	return out, nil
}

// Write copies data into the storage starting at addr.
func (s *Storage) Write(addr uint64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := uint64(len(data))
	if addr+n > s.capacity {
		return ErrOutOfRange
	}

	done := uint64(0)

	for done < n {
		curr := addr + done
		unit, err := s.unitFor(curr)
		if err != nil {
			return err
		}

		inUnit := curr % s.unitSize
		chunk := s.unitSize - inUnit
		if n-done < chunk {
			chunk = n - done
		}

		copy(unit[inUnit:inUnit+chunk], data[done:done+chunk])
		done += chunk
	}

	return nil
}
