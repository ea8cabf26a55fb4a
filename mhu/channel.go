package mhu

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sarchlab/mhu/irq"
	"github.com/sarchlab/mhu/regmap"
)

// A CompletionFunc receives the descriptor of a completed transfer. It is
// invoked in interrupt context and must not block and must not send on the
// same channel. Consumers that cannot honor that should hand off through a
// CompletionQueue.
type CompletionFunc func(*Message)

// A Channel is one bidirectional mailbox endpoint. A channel carries at
// most one outstanding descriptor: Send arms it from caller context and
// the receive interrupt consumes it in interrupt context. The slot is
// guarded by a mutex so the arming write is visible to the interrupt
// handler.
type Channel struct {
	HookableBase

	name  string
	role  string
	index int
	ctlr  *Controller
	line  irq.Line

	strict bool

	// irqMu serializes receive-interrupt processing, so Dispatch-driven
	// delivery gets the same one-at-a-time guarantee a line gives its
	// handler. It is taken before mu and never the other way around.
	irqMu sync.Mutex

	mu       sync.Mutex
	pending  *Message
	started  bool
	complete CompletionFunc

	sends       atomic.Uint64
	completions atomic.Uint64
	spurious    atomic.Uint64
}

// Name returns the hierarchical name of the channel.
func (c *Channel) Name() string {
	return c.name
}

// Role returns "low-priority" or "high-priority".
func (c *Channel) Role() string {
	return c.role
}

// Index returns the channel index within its controller.
func (c *Channel) Index() int {
	return c.index
}

// Controller returns the controller that owns the channel.
func (c *Channel) Controller() *Controller {
	return c.ctlr
}

// IRQ returns the number of the channel's receive interrupt line.
func (c *Channel) IRQ() int {
	return c.line.Num()
}

// RegisterCompletion installs the notification invoked with each completed
// descriptor. It must be installed before Start.
func (c *Channel) RegisterCompletion(f CompletionFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.complete = f
}

// Send deposits a message into the transmit window and asserts the command
// bits toward the peer. It returns once the SET write is issued; it does
// not wait for the peer to consume the message. Completion of a transmit
// is observed through TransmitIdle.
//
// A channel built without strict mode accepts a send even if the previous
// transmit's status bit has not cleared, matching the hardware contract
// that the caller polls TransmitIdle first. In strict mode such a send
// fails with ErrBusy.
func (c *Channel) Send(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: nil message", ErrInvalidArgument)
	}

	if len(msg.TxData) > regmap.PayloadCapacity {
		return fmt.Errorf("%w: tx data %d bytes exceeds payload capacity %#x",
			ErrInvalidArgument, len(msg.TxData), regmap.PayloadCapacity)
	}

	if msg.RxLen > regmap.PayloadCapacity || msg.RxLen > len(msg.RxBuf) {
		return fmt.Errorf("%w: rx length %d exceeds buffer or capacity",
			ErrInvalidArgument, msg.RxLen)
	}

	c.mu.Lock()

	if c.strict {
		if c.pending != nil || !c.transmitIdle() {
			c.mu.Unlock()
			return fmt.Errorf("%w: previous transfer outstanding on %s",
				ErrBusy, c.name)
		}
	}

	c.pending = msg
	c.mu.Unlock()

	if len(msg.TxData) > 0 {
		c.ctlr.payload.WriteBytes(
			regmap.Payload(regmap.TX, c.index), msg.TxData)
	}

	c.ctlr.regs.Write32(regmap.Set(regmap.TX, c.index), msg.Cmd)

	c.sends.Add(1)
	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosSend, Item: msg})

	return nil
}

// recvInterrupt is the receive-completion handler. It runs in interrupt
// context, serialized per channel, so completions for one channel never
// overlap. It reports whether the event belonged to this channel.
func (c *Channel) recvInterrupt() bool {
	c.irqMu.Lock()
	defer c.irqMu.Unlock()

	status := c.ctlr.regs.Read32(regmap.Status(regmap.RX, c.index))
	if status == 0 {
		c.spurious.Add(1)
		c.InvokeHook(HookCtx{Domain: c, Pos: HookPosSpurious})
		return false
	}

	c.mu.Lock()

	msg := c.pending
	if msg == nil {
		c.mu.Unlock()
		c.spurious.Add(1)
		c.InvokeHook(HookCtx{Domain: c, Pos: HookPosSpurious, Detail: status})
		return false
	}

	if msg.RxBuf != nil {
		data := c.ctlr.payload.ReadBytes(
			regmap.Payload(regmap.RX, c.index), uint64(msg.RxLen))
		copy(msg.RxBuf, data)
	}

	c.pending = nil
	complete := c.complete

	c.mu.Unlock()

	if complete != nil {
		complete(msg)
	}

	// Acknowledge only after the payload copy and the completion
	// hand-off, so the hardware cannot re-arm before the data is read.
	c.ctlr.regs.Write32(regmap.Clear(regmap.RX, c.index), regmap.ClearAll)

	c.completions.Add(1)
	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosComplete, Item: msg, Detail: status})

	return true
}

// Start claims the channel's interrupt line and installs the receive
// handler. A second Start without a Stop in between fails with
// ErrResourceUnavailable, as does a line owned elsewhere.
//
// The claim is made without the channel mutex held. An in-flight
// interrupt holds the line while it acquires the channel mutex, so
// claiming in the opposite order would deadlock both contexts.
func (c *Channel) Start() error {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()

	if started {
		return fmt.Errorf("%w: %s already started",
			ErrResourceUnavailable, c.name)
	}

	if err := c.line.Claim(c.name, c.recvInterrupt); err != nil {
		return fmt.Errorf("%w: claim irq %d: %v",
			ErrResourceUnavailable, c.line.Num(), err)
	}

	c.mu.Lock()
	c.started = true
	c.mu.Unlock()

	return nil
}

// Stop discards any outstanding descriptor without copying data and
// releases the interrupt line. The original sender sees no completion; it
// must enforce its own timeout if it needs liveness. Stop is safe on a
// channel that never started.
func (c *Channel) Stop() {
	c.mu.Lock()

	dropped := c.pending
	c.pending = nil
	c.started = false

	c.mu.Unlock()

	c.line.Release()

	if dropped != nil {
		c.InvokeHook(HookCtx{Domain: c, Pos: HookPosStop, Item: dropped})
	}
}

// TransmitIdle reads the transmit status register and reports whether the
// peer has consumed the last transmit. Callers poll it before reusing the
// channel.
func (c *Channel) TransmitIdle() bool {
	return c.transmitIdle()
}

func (c *Channel) transmitIdle() bool {
	return c.ctlr.regs.Read32(regmap.Status(regmap.TX, c.index)) == 0
}

// WaitTransmitIdle polls TransmitIdle until it turns true or ctx is done.
// It is a caller-context convenience; nothing on the interrupt path blocks.
func (c *Channel) WaitTransmitIdle(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Microsecond)
	defer ticker.Stop()

	for {
		if c.TransmitIdle() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Pending reports whether a descriptor is armed and not yet completed.
func (c *Channel) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pending != nil
}

// Started reports whether the channel currently holds its interrupt line.
func (c *Channel) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.started
}

// Sends returns the number of messages deposited.
func (c *Channel) Sends() uint64 {
	return c.sends.Load()
}

// Completions returns the number of receive completions delivered.
func (c *Channel) Completions() uint64 {
	return c.completions.Load()
}

// Spurious returns the number of interrupts that did not belong to the
// channel.
func (c *Channel) Spurious() uint64 {
	return c.spurious.Load()
}
