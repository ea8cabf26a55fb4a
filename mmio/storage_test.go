package mmio_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mhu/mmio"
)

var _ = Describe("Storage", func() {
	It("should read and write within a single unit", func() {
		storage := mmio.NewStorage(4096)
		Expect(storage.Write(0, []byte{1, 2, 3, 4})).To(Succeed())

		data, err := storage.Read(1, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(data).To(Equal([]byte{2, 3}))
	})

	It("should read and write across units", func() {
		storage := mmio.NewStorage(8192)
		Expect(storage.Write(4094, []byte{1, 2, 3, 4})).To(Succeed())

		data, err := storage.Read(4094, 4)
		Expect(err).ToNot(HaveOccurred())
		Expect(data).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should read zeros from untouched memory", func() {
		storage := mmio.NewStorage(4096)

		data, err := storage.Read(100, 4)
		Expect(err).ToNot(HaveOccurred())
		Expect(data).To(Equal([]byte{0, 0, 0, 0}))
	})

	It("should reject accesses beyond the capacity", func() {
		storage := mmio.NewStorage(4096)

		Expect(storage.Write(4095, []byte{1, 2})).
			To(MatchError(mmio.ErrOutOfRange))

		_, err := storage.Read(4096, 1)
		Expect(err).To(MatchError(mmio.ErrOutOfRange))
	})
})
