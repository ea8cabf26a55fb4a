package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mhu/mhu"
	"github.com/sarchlab/mhu/mhusim"
)

var _ = Describe("Monitor", func() {
	var (
		m     *Monitor
		block *mhusim.Block
		ctlr  *mhu.Controller
	)

	BeforeEach(func() {
		block = mhusim.MakeBuilder().Build("MHU")

		var err error
		ctlr, err = mhu.MakeBuilder().
			WithRegisterWindow(block.RegisterWindow()).
			WithPayloadWindow(block.PayloadWindow()).
			WithLines(block.Lines()...).
			Build("MHU")
		Expect(err).ToNot(HaveOccurred())

		m = NewMonitor()
		m.RegisterController(ctlr)
	})

	AfterEach(func() {
		ctlr.Close()
	})

	It("should list registered controllers", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/controllers", nil)
		rec := httptest.NewRecorder()

		m.router().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))

		var names []string
		Expect(json.Unmarshal(rec.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(Equal([]string{"MHU"}))
	})

	It("should report channel state", func() {
		Expect(ctlr.Channel(0).Start()).To(Succeed())
		msg := mhu.MessageBuilder{}.WithCmd(0x1).Build()
		Expect(ctlr.Channel(0).Send(msg)).To(Succeed())

		req := httptest.NewRequest(
			http.MethodGet, "/api/controller/MHU/channels", nil)
		rec := httptest.NewRecorder()

		m.router().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))

		var channels []channelRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &channels)).To(Succeed())
		Expect(channels).To(HaveLen(2))
		Expect(channels[0].Role).To(Equal("low-priority"))
		Expect(channels[0].Started).To(BeTrue())
		Expect(channels[0].Pending).To(BeTrue())
		Expect(channels[0].TransmitIdle).To(BeFalse())
		Expect(channels[0].Sends).To(Equal(uint64(1)))
		Expect(channels[1].Started).To(BeFalse())
	})

	It("should 404 on an unknown controller", func() {
		req := httptest.NewRequest(
			http.MethodGet, "/api/controller/Nope/channels", nil)
		rec := httptest.NewRecorder()

		m.router().ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should refuse a privileged port number", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
	})
})
