// Package irq models the interrupt lines that deliver mailbox receive
// events to the driver.
//
// A Line is claimed once, by one owner, with one handler. The handler runs
// with the line held, so two assertions of the same line never overlap: a
// second event waits until the current handler returns. Handlers therefore
// must not block and must not re-assert their own line.
package irq

import (
	"errors"
	"fmt"
	"sync"
)

// ErrClaimed reports a claim on a line that already has an owner.
var ErrClaimed = errors.New("irq: line already claimed")

// A Handler is invoked when a claimed line is asserted. It reports whether
// the event belonged to the handler, so a line can be probed by more than
// one consumer.
type Handler func() bool

// A Line is one interrupt line identifier handed to the driver by the
// platform.
type Line interface {
	Num() int
	Claim(owner string, h Handler) error
	Release()
}

// A SoftLine is a software-backed interrupt line. The hardware model
// asserts it; the driver claims it. It is the only Line implementation a
// hosted build needs.
type SoftLine struct {
	num int

	mu      sync.Mutex
	owner   string
	handler Handler
}

// NewLine creates a soft interrupt line with the given number.
func NewLine(num int) *SoftLine {
	return &SoftLine{num: num}
}

// Num returns the line number.
func (l *SoftLine) Num() int {
	return l.num
}

// Claim installs h as the line's handler. It fails with ErrClaimed if the
// line already has an owner.
func (l *SoftLine) Claim(owner string, h Handler) error {
	if h == nil {
		return fmt.Errorf("irq: line %d: nil handler", l.num)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handler != nil {
		return fmt.Errorf("irq: line %d: owned by %s: %w",
			l.num, l.owner, ErrClaimed)
	}

	l.owner = owner
	l.handler = h

	return nil
}

// Release removes the handler. It is safe to call on a line that was never
// claimed.
func (l *SoftLine) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.owner = ""
	l.handler = nil
}

// Assert fires the line. It invokes the handler with the line held and
// reports whether a handler was installed and claimed the event.
func (l *SoftLine) Assert() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handler == nil {
		return false
	}

	return l.handler()
}
