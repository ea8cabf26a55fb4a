package mmio

import (
	"encoding/binary"
	"fmt"
)

// A Window is a bounded view of device memory. Offsets are relative to the
// window base. Accesses beyond the window panic, since the driver computes
// every offset from a fixed register layout and an out-of-window access is
// a programming error, not a runtime condition.
//
// Register values are little-endian 32-bit words.
type Window interface {
	Size() uint64
	Read32(offset uint64) uint32
	Write32(offset uint64, value uint32)
	ReadBytes(offset, n uint64) []byte
	WriteBytes(offset uint64, data []byte)
}

type storageWindow struct {
	storage *Storage
	base    uint64
	size    uint64
}

// Map establishes a window of size bytes at base inside a storage. It
// fails with ErrOutOfRange if the window does not fit the storage.
func Map(s *Storage, base, size uint64) (Window, error) {
	if size == 0 {
		return nil, fmt.Errorf("mmio: map %#x+%#x: empty window", base, size)
	}

	if base+size > s.Capacity() {
		return nil, fmt.Errorf("mmio: map %#x+%#x: %w", base, size, ErrOutOfRange)
	}

	return &storageWindow{storage: s, base: base, size: size}, nil
}

// NewRAM creates a standalone RAM-backed window, for use where no larger
// address space exists, such as simulated payload memory.
func NewRAM(size uint64) Window {
	w, err := Map(NewStorage(size), 0, size)
	if err != nil {
		panic(err)
	}

	return w
}

func (w *storageWindow) Size() uint64 {
	return w.size
}

func (w *storageWindow) Read32(offset uint64) uint32 {
	return binary.LittleEndian.Uint32(w.ReadBytes(offset, 4))
}

func (w *storageWindow) Write32(offset uint64, value uint32) {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, value)
	w.WriteBytes(offset, data)
}

func (w *storageWindow) ReadBytes(offset, n uint64) []byte {
	w.accessMustBeInWindow(offset, n)

	data, err := w.storage.Read(w.base+offset, n)
	if err != nil {
		panic(err)
	}

	return data
}

func (w *storageWindow) WriteBytes(offset uint64, data []byte) {
	w.accessMustBeInWindow(offset, uint64(len(data)))

	if err := w.storage.Write(w.base+offset, data); err != nil {
		panic(err)
	}
}

func (w *storageWindow) accessMustBeInWindow(offset, n uint64) {
	if offset+n > w.size {
		panic(fmt.Sprintf("mmio: access %#x+%#x beyond window size %#x",
			offset, n, w.size))
	}
}
