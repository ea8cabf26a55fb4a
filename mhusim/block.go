// Package mhusim models the MHU hardware block in software: the
// STATUS/SET/CLEAR register semantics, the payload RAM, and the interrupt
// lines toward the application processor. Tests and hosted demos drive the
// driver against a Block exactly the way firmware would drive it against
// silicon, including the peer processor's half of the protocol.
package mhusim

import (
	"fmt"
	"sync"

	"github.com/sarchlab/mhu/irq"
	"github.com/sarchlab/mhu/mmio"
	"github.com/sarchlab/mhu/regmap"
)

// A PeerHandler plays the remote processor. The block invokes it, on the
// writer's goroutine, whenever the driver writes a non-zero command into a
// transmit SET register. data is a copy of the channel's transmit payload
// sub-window.
type PeerHandler func(channel int, cmd uint32, data []byte)

// A Block is one simulated MHU instance.
type Block struct {
	name string

	mu     sync.Mutex
	status [2][regmap.NumChannels]uint32

	payload mmio.Window
	regs    *registerFile
	lines   [regmap.NumChannels]*irq.SoftLine

	peer PeerHandler
}

// Builder builds blocks.
type Builder struct {
	peer     PeerHandler
	lineBase int
}

// MakeBuilder returns a builder with default configuration.
func MakeBuilder() Builder {
	return Builder{lineBase: 32}
}

// WithPeerHandler installs the remote processor model.
func (b Builder) WithPeerHandler(peer PeerHandler) Builder {
	b.peer = peer
	return b
}

// WithLineBase sets the number of the first interrupt line; channel i gets
// line lineBase+i.
func (b Builder) WithLineBase(lineBase int) Builder {
	b.lineBase = lineBase
	return b
}

// Build creates the block.
func (b Builder) Build(name string) *Block {
	block := &Block{
		name:    name,
		payload: mmio.NewRAM(regmap.PayloadWindowSize),
		peer:    b.peer,
	}

	block.regs = &registerFile{block: block}

	for i := range block.lines {
		block.lines[i] = irq.NewLine(b.lineBase + i)
	}

	return block
}

// Name returns the block name.
func (b *Block) Name() string {
	return b.name
}

// RegisterWindow returns the control register window the driver maps.
func (b *Block) RegisterWindow() mmio.Window {
	return b.regs
}

// PayloadWindow returns the payload RAM window the driver maps.
func (b *Block) PayloadWindow() mmio.Window {
	return b.payload
}

// Line returns the receive interrupt line for a channel.
func (b *Block) Line(channel int) *irq.SoftLine {
	return b.lines[channel]
}

// Lines returns all receive interrupt lines in channel order.
func (b *Block) Lines() []irq.Line {
	lines := make([]irq.Line, len(b.lines))
	for i, l := range b.lines {
		lines[i] = l
	}

	return lines
}

// InjectRx plays a message arriving from the peer: it deposits data into
// the channel's receive payload sub-window, raises the receive status
// bits, and asserts the channel's interrupt line.
func (b *Block) InjectRx(channel int, cmd uint32, data []byte) error {
	if len(data) > regmap.PayloadCapacity {
		return fmt.Errorf("mhusim: inject %d bytes exceeds payload capacity %#x",
			len(data), regmap.PayloadCapacity)
	}

	if cmd == 0 {
		return fmt.Errorf("mhusim: inject with zero command raises no status")
	}

	if len(data) > 0 {
		b.payload.WriteBytes(regmap.Payload(regmap.RX, channel), data)
	}

	b.regs.Write32(regmap.Set(regmap.RX, channel), cmd)

	return nil
}

// TxStatus returns the peer-side view of a channel's transmit status
// bits.
func (b *Block) TxStatus(channel int) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.status[regmap.TX][channel]
}

// ReadTx returns a copy of the first n bytes of a channel's transmit
// payload sub-window, as the peer would read them.
func (b *Block) ReadTx(channel int, n uint64) []byte {
	return b.payload.ReadBytes(regmap.Payload(regmap.TX, channel), n)
}

// CompleteTx plays the peer acknowledging a transmit: it clears the
// channel's transmit status bits, which the driver observes through
// TransmitIdle.
func (b *Block) CompleteTx(channel int) {
	b.regs.Write32(regmap.Clear(regmap.TX, channel), regmap.ClearAll)
}

// registerFile gives the driver a window with live SET/STATUS/CLEAR
// semantics. Writes to SET raise status bits and signal; writes to CLEAR
// lower them; STATUS is read-only. Offsets that name no register read as
// zero and swallow writes, like reserved space in the real block.
type registerFile struct {
	block *Block
}

func (r *registerFile) Size() uint64 {
	return regmap.RegisterWindowSize
}

func (r *registerFile) Read32(offset uint64) uint32 {
	dir, channel, kind, ok := regmap.DecodeRegister(offset)
	if !ok || kind != regmap.KindStatus {
		return 0
	}

	r.block.mu.Lock()
	defer r.block.mu.Unlock()

	return r.block.status[dir][channel]
}

func (r *registerFile) Write32(offset uint64, value uint32) {
	dir, channel, kind, ok := regmap.DecodeRegister(offset)
	if !ok {
		return
	}

	b := r.block
	assertLine := false
	notifyPeer := false

	b.mu.Lock()

	switch kind {
	case regmap.KindSet:
		b.status[dir][channel] |= value
		if value != 0 {
			if dir == regmap.RX {
				assertLine = true
			} else {
				notifyPeer = b.peer != nil
			}
		}
	case regmap.KindClear:
		b.status[dir][channel] &^= value
	case regmap.KindStatus:
		// read-only
	}

	b.mu.Unlock()

	// The line and the peer are signaled outside the block lock: both
	// re-enter the register file from their handlers.
	if assertLine {
		b.lines[channel].Assert()
	}

	if notifyPeer {
		data := b.ReadTx(channel, regmap.PayloadCapacity)
		b.peer(channel, value, data)
	}
}

func (r *registerFile) ReadBytes(offset, n uint64) []byte {
	panic(fmt.Sprintf(
		"mhusim: byte access %#x+%#x on register window", offset, n))
}

func (r *registerFile) WriteBytes(offset uint64, data []byte) {
	panic(fmt.Sprintf(
		"mhusim: byte access %#x+%d on register window", offset, len(data)))
}
