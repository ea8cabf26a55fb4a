package datarecording

import (
	"sync"
	"time"

	"github.com/sarchlab/mhu/mhu"
)

// TransferTableName is the table transfer events are written to.
const TransferTableName = "mailbox_transfers"

// A TransferEntry is one row of the transfer table.
type TransferEntry struct {
	TimeNs  int64
	Channel string
	Event   string
	MsgID   string
	Cmd     uint32
	Bytes   int
}

// A TransferRecorder is a hook that records every mailbox protocol event
// of the channels it is attached to.
type TransferRecorder struct {
	mu       sync.Mutex
	recorder DataRecorder
}

// NewTransferRecorder creates the transfer table and returns the hook.
// Attach it with Channel.AcceptHook.
func NewTransferRecorder(recorder DataRecorder) *TransferRecorder {
	recorder.CreateTable(TransferTableName, TransferEntry{})

	return &TransferRecorder{recorder: recorder}
}

// Func records the event.
func (r *TransferRecorder) Func(ctx mhu.HookCtx) {
	channel, ok := ctx.Domain.(*mhu.Channel)
	if !ok {
		return
	}

	entry := TransferEntry{
		TimeNs:  time.Now().UnixNano(),
		Channel: channel.Name(),
	}

	switch ctx.Pos {
	case mhu.HookPosSend:
		msg := ctx.Item.(*mhu.Message)
		entry.Event = "send"
		entry.MsgID = msg.ID
		entry.Cmd = msg.Cmd
		entry.Bytes = len(msg.TxData)
	case mhu.HookPosComplete:
		msg := ctx.Item.(*mhu.Message)
		entry.Event = "complete"
		entry.MsgID = msg.ID
		entry.Bytes = msg.RxLen
	case mhu.HookPosSpurious:
		entry.Event = "spurious"
	case mhu.HookPosStop:
		msg := ctx.Item.(*mhu.Message)
		entry.Event = "dropped"
		entry.MsgID = msg.ID
	default:
		return
	}

	// A controller has one channel per interrupt line, so hooks can fire
	// from more than one goroutine at the same time.
	r.mu.Lock()
	r.recorder.InsertData(TransferTableName, entry)
	r.mu.Unlock()
}
