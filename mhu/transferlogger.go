package mhu

import "log"

// TransferLogger is a hook that writes one line per mailbox protocol event
// into a logger.
type TransferLogger struct {
	logger *log.Logger
}

// NewTransferLogger returns a hook that logs into logger.
func NewTransferLogger(logger *log.Logger) *TransferLogger {
	return &TransferLogger{logger: logger}
}

// Func writes the event information into the logger.
func (l *TransferLogger) Func(ctx HookCtx) {
	channel, ok := ctx.Domain.(*Channel)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosSend:
		msg := ctx.Item.(*Message)
		l.logger.Printf("%s,send,%s,cmd=%#x,tx=%d",
			channel.Name(), msg.ID, msg.Cmd, len(msg.TxData))
	case HookPosComplete:
		msg := ctx.Item.(*Message)
		l.logger.Printf("%s,complete,%s,rx=%d",
			channel.Name(), msg.ID, msg.RxLen)
	case HookPosSpurious:
		l.logger.Printf("%s,spurious", channel.Name())
	case HookPosStop:
		msg := ctx.Item.(*Message)
		l.logger.Printf("%s,dropped,%s", channel.Name(), msg.ID)
	}
}
