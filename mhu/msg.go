package mhu

// A Message describes one mailbox transfer. The consumer owns both
// buffers; the channel borrows them for the duration of the transfer and
// never interprets their contents.
//
// TxData is copied into the transmit payload window when the message is
// sent. RxBuf, if present, receives RxLen bytes from the receive payload
// window when the completion interrupt fires. The driver trusts RxLen; it
// does not infer a length from hardware.
type Message struct {
	ID  string
	Cmd uint32

	TxData []byte

	RxBuf []byte
	RxLen int
}

// MessageBuilder builds messages.
type MessageBuilder struct {
	cmd         uint32
	txData      []byte
	rxBuf       []byte
	rxLen       int
	idGenerator IDGenerator
}

// WithCmd sets the command code written to the SET register.
func (b MessageBuilder) WithCmd(cmd uint32) MessageBuilder {
	b.cmd = cmd
	return b
}

// WithTxData sets the bytes deposited into the transmit payload window.
func (b MessageBuilder) WithTxData(data []byte) MessageBuilder {
	b.txData = data
	return b
}

// WithRxBuf arms buf to receive the completion payload. The expected
// length defaults to len(buf).
func (b MessageBuilder) WithRxBuf(buf []byte) MessageBuilder {
	b.rxBuf = buf
	b.rxLen = len(buf)
	return b
}

// WithRxLen overrides the expected receive length.
func (b MessageBuilder) WithRxLen(n int) MessageBuilder {
	b.rxLen = n
	return b
}

// WithIDGenerator sets the generator used to assign the message ID.
func (b MessageBuilder) WithIDGenerator(g IDGenerator) MessageBuilder {
	b.idGenerator = g
	return b
}

// Build creates the message.
func (b MessageBuilder) Build() *Message {
	g := b.idGenerator
	if g == nil {
		g = defaultIDGenerator
	}

	return &Message{
		ID:     g.Generate(),
		Cmd:    b.cmd,
		TxData: b.txData,
		RxBuf:  b.rxBuf,
		RxLen:  b.rxLen,
	}
}
