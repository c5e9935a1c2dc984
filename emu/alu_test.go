package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("ALU", func() {
	var (
		regFile *emu.RegFile
		alu     *emu.ALU
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		alu = emu.NewALU(regFile)
	})

	Describe("Logic", func() {
		BeforeEach(func() {
			regFile.WriteReg(0xA, 0xCA)
			regFile.WriteReg(0xB, 0x0F)
			regFile.WriteReg(0xF, 0x55)
		})

		It("should OR", func() {
			alu.OR(0xA, 0xB)
			Expect(regFile.ReadReg(0xA)).To(Equal(uint8(0xCF)))
		})

		It("should AND", func() {
			alu.AND(0xA, 0xB)
			Expect(regFile.ReadReg(0xA)).To(Equal(uint8(0x0A)))
		})

		It("should XOR", func() {
			alu.XOR(0xA, 0xB)
			Expect(regFile.ReadReg(0xA)).To(Equal(uint8(0xC5)))
		})

		It("should copy", func() {
			alu.LD(0xA, 0xB)
			Expect(regFile.ReadReg(0xA)).To(Equal(uint8(0x0F)))
		})

		AfterEach(func() {
			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(0x55)))
		})
	})

	Describe("ADD", func() {
		It("should clear the carry when the sum fits", func() {
			regFile.WriteReg(1, 0x10)
			regFile.WriteReg(2, 0x20)
			regFile.WriteReg(0xF, 1)

			alu.ADD(1, 2)

			Expect(regFile.ReadReg(1)).To(Equal(uint8(0x30)))
			Expect(regFile.ReadReg(0xF)).To(BeZero())
		})

		It("should leave the flag in VF when VF is the destination", func() {
			regFile.WriteReg(0xF, 0xFF)
			regFile.WriteReg(1, 0x02)

			alu.ADD(0xF, 1)

			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(1)))
		})
	})

	Describe("SUB and SUBN", func() {
		It("should clear VF on equal operands", func() {
			regFile.WriteReg(1, 0x33)
			regFile.WriteReg(2, 0x33)

			alu.SUB(1, 2)

			Expect(regFile.ReadReg(1)).To(BeZero())
			Expect(regFile.ReadReg(0xF)).To(BeZero())
		})

		It("should wrap and clear VF when Vy > Vx", func() {
			regFile.WriteReg(1, 0x01)
			regFile.WriteReg(2, 0x02)

			alu.SUB(1, 2)

			Expect(regFile.ReadReg(1)).To(Equal(uint8(0xFF)))
			Expect(regFile.ReadReg(0xF)).To(BeZero())
		})

		It("should compute Vy - Vx for SUBN", func() {
			regFile.WriteReg(0xA, 0xCA)
			regFile.WriteReg(0xB, 0xFF)

			alu.SUBN(0xA, 0xB)

			Expect(regFile.ReadReg(0xA)).To(Equal(uint8(0x35)))
			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(1)))
		})

		It("should wrap SUBN and clear VF when Vx > Vy", func() {
			regFile.WriteReg(0xA, 0x02)
			regFile.WriteReg(0xB, 0x01)

			alu.SUBN(0xA, 0xB)

			Expect(regFile.ReadReg(0xA)).To(Equal(uint8(0xFF)))
			Expect(regFile.ReadReg(0xF)).To(BeZero())
		})
	})

	Describe("Shifts", func() {
		It("should shift right with the low bit in VF", func() {
			regFile.WriteReg(3, 0x05)

			alu.SHR(3)

			Expect(regFile.ReadReg(3)).To(Equal(uint8(0x02)))
			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(1)))
		})

		It("should shift left with the high bit in VF", func() {
			regFile.WriteReg(3, 0x81)

			alu.SHL(3)

			Expect(regFile.ReadReg(3)).To(Equal(uint8(0x02)))
			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(1)))
		})

		It("should clear VF when the shifted-out bit is zero", func() {
			regFile.WriteReg(3, 0x40)
			regFile.WriteReg(0xF, 1)

			alu.SHL(3)

			Expect(regFile.ReadReg(3)).To(Equal(uint8(0x80)))
			Expect(regFile.ReadReg(0xF)).To(BeZero())
		})
	})

	Describe("RND", func() {
		It("should draw from the source and mask", func() {
			src := emu.NewSequenceSource(0xFF, 0x3C)

			alu.RND(1, 0xF0, src)
			Expect(regFile.ReadReg(1)).To(Equal(uint8(0xF0)))

			alu.RND(1, 0x0F, src)
			Expect(regFile.ReadReg(1)).To(Equal(uint8(0x0C)))
		})

		It("should produce every byte value from the default source", func() {
			src := emu.NewRandomSource(1)
			seen := map[uint8]bool{}
			for i := 0; i < 20000; i++ {
				seen[src.Byte()] = true
			}
			Expect(seen).To(HaveLen(256))
		})
	})
})
