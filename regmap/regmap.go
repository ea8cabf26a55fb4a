// Package regmap computes register and payload offsets for the MHU
// inter-processor mailbox block.
//
// The block exposes two banks of STATUS/SET/CLEAR register triplets, one
// per transfer direction, plus a shared payload RAM that is split into a
// fixed-size sub-window per channel and direction. All offsets are pure
// functions of the channel index and the direction. Nothing in this
// package touches hardware.
//
// Register window layout, channel index i:
//
//	+----------+-------------+-------------+
//	| Register | RX offset   | TX offset   |
//	+----------+-------------+-------------+
//	| STATUS   | i*0x20      | 0x100+i*0x20|
//	| SET      | i*0x20+0x08 | 0x100+i*0x20+0x08 |
//	| CLEAR    | i*0x20+0x10 | 0x100+i*0x20+0x10 |
//	+----------+-------------+-------------+
//
// Payload window layout, channel index i:
//
//	+-----------+-------------+
//	| Direction | Offset      |
//	+-----------+-------------+
//	| RX        | i*0x400     |
//	| TX        | i*0x400+0x200 |
//	+-----------+-------------+
package regmap

import "fmt"

// Direction selects one half of a channel's register and payload pair.
type Direction int

// The two transfer directions, seen from the application processor.
const (
	RX Direction = iota
	TX
)

func (d Direction) String() string {
	switch d {
	case RX:
		return "RX"
	case TX:
		return "TX"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// RegKind identifies one register of a channel's triplet.
type RegKind int

// The three registers of a channel/direction triplet.
const (
	KindStatus RegKind = iota
	KindSet
	KindClear
)

func (k RegKind) String() string {
	switch k {
	case KindStatus:
		return "STATUS"
	case KindSet:
		return "SET"
	case KindClear:
		return "CLEAR"
	default:
		return fmt.Sprintf("RegKind(%d)", int(k))
	}
}

const (
	// NumChannels is the number of channels the block exposes to
	// non-secure software. A third, secure-only channel exists in the
	// architecture but is not reachable through this driver.
	NumChannels = 2

	// ChannelLowPriority and ChannelHighPriority are the channel indices.
	ChannelLowPriority  = 0
	ChannelHighPriority = 1

	channelStride = 0x20
	txBankBase    = 0x100
	setOffset     = 0x08
	clearOffset   = 0x10

	// PayloadCapacity is the number of payload bytes available to one
	// channel in one direction.
	PayloadCapacity = 0x200

	payloadStride = 0x400

	// RegisterWindowSize is the size of the control register window a
	// controller needs mapped.
	RegisterWindowSize = txBankBase + NumChannels*channelStride

	// PayloadWindowSize is the size of the payload RAM window a
	// controller needs mapped.
	PayloadWindowSize = NumChannels * payloadStride
)

// ClearAll is the pattern written to a CLEAR register to acknowledge and
// de-assert every status bit of a channel at once.
const ClearAll = ^uint32(0)

// Status returns the offset of the STATUS register for a channel and
// direction.
func Status(dir Direction, channel int) uint64 {
	return regBase(dir, channel)
}

// Set returns the offset of the SET register for a channel and direction.
func Set(dir Direction, channel int) uint64 {
	return regBase(dir, channel) + setOffset
}

// Clear returns the offset of the CLEAR register for a channel and
// direction.
func Clear(dir Direction, channel int) uint64 {
	return regBase(dir, channel) + clearOffset
}

// Payload returns the offset of the payload sub-window for a channel and
// direction.
func Payload(dir Direction, channel int) uint64 {
	channelMustBeValid(channel)

	offset := uint64(channel) * payloadStride
	if dir == TX {
		offset += PayloadCapacity
	}

	return offset
}

func regBase(dir Direction, channel int) uint64 {
	channelMustBeValid(channel)

	base := uint64(channel) * channelStride
	if dir == TX {
		base += txBankBase
	}

	return base
}

func channelMustBeValid(channel int) {
	if channel < 0 || channel >= NumChannels {
		panic(fmt.Sprintf("channel index %d out of range", channel))
	}
}

// DecodeRegister maps a register window offset back to the channel,
// direction, and register kind it belongs to. The last return value is
// false if the offset does not name a register.
func DecodeRegister(offset uint64) (Direction, int, RegKind, bool) {
	dir := RX
	if offset >= txBankBase {
		dir = TX
		offset -= txBankBase
	}

	channel := int(offset / channelStride)
	if channel >= NumChannels {
		return 0, 0, 0, false
	}

	switch offset % channelStride {
	case 0:
		return dir, channel, KindStatus, true
	case setOffset:
		return dir, channel, KindSet, true
	case clearOffset:
		return dir, channel, KindClear, true
	default:
		return 0, 0, 0, false
	}
}
