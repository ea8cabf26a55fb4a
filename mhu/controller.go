package mhu

import (
	"fmt"

	"github.com/sarchlab/mhu/irq"
	"github.com/sarchlab/mhu/mmio"
	"github.com/sarchlab/mhu/regmap"
)

var channelRoles = [regmap.NumChannels]string{
	"low-priority",
	"high-priority",
}

// A Controller owns one MHU hardware instance: the control register
// window, the payload RAM window, and the fixed set of channels. Channels
// do not outlive their controller.
type Controller struct {
	HookableBase

	name     string
	regs     mmio.Window
	payload  mmio.Window
	channels [regmap.NumChannels]*Channel
}

// Name returns the controller name.
func (c *Controller) Name() string {
	return c.name
}

// NumChannels returns the number of channels.
func (c *Controller) NumChannels() int {
	return len(c.channels)
}

// Channel returns the channel at index i. It panics on an out-of-range
// index, matching the register layer's contract.
func (c *Controller) Channel(i int) *Channel {
	if i < 0 || i >= len(c.channels) {
		panic(fmt.Sprintf("channel index %d out of range", i))
	}

	return c.channels[i]
}

// ChannelByRole returns the channel with the given role name, or nil.
func (c *Controller) ChannelByRole(role string) *Channel {
	for _, ch := range c.channels {
		if ch.role == role {
			return ch
		}
	}

	return nil
}

// Channels returns all channels in index order.
func (c *Controller) Channels() []*Channel {
	return c.channels[:]
}

// Dispatch routes a fired interrupt line number to the owning channel's
// receive handler. Platforms that deliver interrupts by number instead of
// by line handle can call it directly; concurrent dispatches of the same
// line are serialized the same way line-driven delivery is. It reports
// whether any channel claimed the event.
func (c *Controller) Dispatch(lineNum int) bool {
	for _, ch := range c.channels {
		if ch.line.Num() == lineNum && ch.Started() {
			return ch.recvInterrupt()
		}
	}

	return false
}

// Close stops every channel, releasing their interrupt lines and
// discarding outstanding descriptors.
func (c *Controller) Close() {
	for _, ch := range c.channels {
		ch.Stop()
	}
}

// Builder builds controllers.
type Builder struct {
	regs    mmio.Window
	payload mmio.Window
	lines   []irq.Line
	strict  bool
}

// MakeBuilder returns a builder with default configuration.
func MakeBuilder() Builder {
	return Builder{}
}

// WithRegisterWindow sets the mapped control register window.
func (b Builder) WithRegisterWindow(w mmio.Window) Builder {
	b.regs = w
	return b
}

// WithPayloadWindow sets the mapped payload RAM window.
func (b Builder) WithPayloadWindow(w mmio.Window) Builder {
	b.payload = w
	return b
}

// WithLines sets the receive interrupt lines, one per channel in index
// order.
func (b Builder) WithLines(lines ...irq.Line) Builder {
	b.lines = lines
	return b
}

// WithStrictSend upgrades the busy-channel contract: Send fails with
// ErrBusy while a previous transfer is outstanding, instead of silently
// overwriting the pending slot the way the hardware contract allows.
func (b Builder) WithStrictSend() Builder {
	b.strict = true
	return b
}

// Build creates the controller and its channels. It fails if either window
// is missing or too small, or if the interrupt lines do not cover every
// channel.
func (b Builder) Build(name string) (*Controller, error) {
	if b.regs == nil || b.payload == nil {
		return nil, fmt.Errorf("%w: both register and payload windows required",
			ErrInvalidArgument)
	}

	if b.regs.Size() < regmap.RegisterWindowSize {
		return nil, fmt.Errorf(
			"%w: register window %#x smaller than required %#x",
			ErrInvalidArgument, b.regs.Size(), regmap.RegisterWindowSize)
	}

	if b.payload.Size() < regmap.PayloadWindowSize {
		return nil, fmt.Errorf(
			"%w: payload window %#x smaller than required %#x",
			ErrInvalidArgument, b.payload.Size(), regmap.PayloadWindowSize)
	}

	if len(b.lines) != regmap.NumChannels {
		return nil, fmt.Errorf("%w: need %d interrupt lines, got %d",
			ErrInvalidArgument, regmap.NumChannels, len(b.lines))
	}

	c := &Controller{
		name:    name,
		regs:    b.regs,
		payload: b.payload,
	}

	for i := range c.channels {
		line := b.lines[i]
		if line == nil {
			return nil, fmt.Errorf("%w: interrupt line %d is nil",
				ErrInvalidArgument, i)
		}

		c.channels[i] = &Channel{
			name:   fmt.Sprintf("%s.Channel[%d]", name, i),
			role:   channelRoles[i],
			index:  i,
			ctlr:   c,
			line:   line,
			strict: b.strict,
		}
	}

	return c, nil
}
