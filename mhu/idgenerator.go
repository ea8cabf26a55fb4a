package mhu

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// An IDGenerator assigns IDs to messages.
type IDGenerator interface {
	Generate() string
}

// NewSequentialIDGenerator returns a generator that numbers messages in
// order. Deterministic, for tests and single-threaded senders.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewParallelIDGenerator returns a generator safe for concurrent senders.
// IDs are unique but not ordered.
func NewParallelIDGenerator() IDGenerator {
	return parallelIDGenerator{}
}

type sequentialIDGenerator struct {
	next uint64
}

func (g *sequentialIDGenerator) Generate() string {
	return strconv.FormatUint(atomic.AddUint64(&g.next, 1), 10)
}

type parallelIDGenerator struct{}

func (parallelIDGenerator) Generate() string {
	return xid.New().String()
}

var defaultIDGenerator IDGenerator = NewParallelIDGenerator()
