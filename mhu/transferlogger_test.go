package mhu

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TransferLogger", func() {
	var (
		buf     bytes.Buffer
		hook    *TransferLogger
		channel *Channel
	)

	BeforeEach(func() {
		buf.Reset()
		hook = NewTransferLogger(log.New(&buf, "", 0))
		channel = &Channel{name: "MHU.Channel[0]"}
		channel.AcceptHook(hook)
	})

	It("should log a send", func() {
		msg := &Message{ID: "42", Cmd: 0x7, TxData: []byte{1, 2}}

		channel.InvokeHook(HookCtx{Domain: channel, Pos: HookPosSend, Item: msg})

		Expect(buf.String()).
			To(Equal("MHU.Channel[0],send,42,cmd=0x7,tx=2\n"))
	})

	It("should log a completion", func() {
		msg := &Message{ID: "42", RxBuf: make([]byte, 4), RxLen: 4}

		channel.InvokeHook(HookCtx{
			Domain: channel, Pos: HookPosComplete, Item: msg,
		})

		Expect(buf.String()).To(Equal("MHU.Channel[0],complete,42,rx=4\n"))
	})

	It("should log a spurious interrupt", func() {
		channel.InvokeHook(HookCtx{Domain: channel, Pos: HookPosSpurious})

		Expect(buf.String()).To(Equal("MHU.Channel[0],spurious\n"))
	})
})
