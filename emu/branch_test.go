package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("Branch Instructions", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	load := func(words ...uint16) {
		Expect(e.LoadProgram(program(words...))).To(Succeed())
	}

	Describe("JP", func() {
		It("should set PC to nnn without incrementing", func() {
			load(0x151F)

			Expect(e.Step().Err).NotTo(HaveOccurred())
			Expect(e.RegFile().PC).To(Equal(uint16(0x51F)))
		})
	})

	Describe("JP V0", func() {
		It("should jump to nnn + V0", func() {
			load(0x6010, 0xB300)

			_, err := e.Run(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.RegFile().PC).To(Equal(uint16(0x310)))
			Expect(e.RegFile().ReadReg(0xF)).To(BeZero())
		})
	})

	Describe("CALL and RET", func() {
		It("should push the following address and jump", func() {
			load(0x213F)

			Expect(e.Step().Err).NotTo(HaveOccurred())
			Expect(e.RegFile().PC).To(Equal(uint16(0x13F)))
			Expect(e.Stack().SP()).To(Equal(uint8(1)))
			Expect(e.Stack().Peek(0)).To(Equal(uint16(0x202)))
		})

		It("should round-trip through a subroutine", func() {
			load(0x213F)
			e.Memory().Write16(0x13F, 0x00EE)

			_, err := e.Run(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
			Expect(e.Stack().SP()).To(BeZero())
		})

		It("should fail the 17th nested call with StackOverflow", func() {
			// CALL 0x200 recurses forever without returning.
			load(0x2200)

			n, err := e.Run(16)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(16))
			Expect(e.Stack().SP()).To(Equal(uint8(16)))

			before := e.Stack().Entries()
			result := e.Step()

			Expect(result.Err).To(MatchError(emu.ErrStackOverflow))
			Expect(e.RegFile().PC).To(Equal(uint16(0x200)))
			Expect(e.Stack().SP()).To(Equal(uint8(16)))
			Expect(e.Stack().Entries()).To(Equal(before))
		})

		It("should fail RET on an empty stack with StackUnderflow", func() {
			load(0x00EE)

			result := e.Step()

			Expect(result.Err).To(MatchError(emu.ErrStackUnderflow))
			Expect(e.RegFile().PC).To(Equal(uint16(0x200)))
		})
	})

	DescribeTable("Skips",
		func(setup func(e *emu.Emulator), word uint16, wantPC uint16) {
			setup(e)
			load(word)

			Expect(e.Step().Err).NotTo(HaveOccurred())
			Expect(e.RegFile().PC).To(Equal(wantPC))
		},
		Entry("SE Vx, kk taken", func(e *emu.Emulator) { e.RegFile().WriteReg(2, 0xA) }, uint16(0x320A), uint16(0x204)),
		Entry("SE Vx, kk not taken", func(e *emu.Emulator) { e.RegFile().WriteReg(2, 0xB) }, uint16(0x320A), uint16(0x202)),
		Entry("SNE Vx, kk taken", func(e *emu.Emulator) { e.RegFile().WriteReg(2, 0xB) }, uint16(0x420A), uint16(0x204)),
		Entry("SNE Vx, kk not taken", func(e *emu.Emulator) { e.RegFile().WriteReg(2, 0xA) }, uint16(0x420A), uint16(0x202)),
		Entry("SE Vx, Vy taken", func(e *emu.Emulator) {
			e.RegFile().WriteReg(2, 0xB)
			e.RegFile().WriteReg(1, 0xB)
		}, uint16(0x5210), uint16(0x204)),
		Entry("SE Vx, Vy not taken", func(e *emu.Emulator) { e.RegFile().WriteReg(2, 0xB) }, uint16(0x5210), uint16(0x202)),
		Entry("SNE Vx, Vy taken", func(e *emu.Emulator) { e.RegFile().WriteReg(2, 0xB) }, uint16(0x9210), uint16(0x204)),
		Entry("SNE Vx, Vy not taken", func(e *emu.Emulator) {}, uint16(0x9210), uint16(0x202)),
		Entry("SKP taken", func(e *emu.Emulator) {
			e.RegFile().WriteReg(3, 0x7)
			e.Keypad().Set(0x7, true)
		}, uint16(0xE39E), uint16(0x204)),
		Entry("SKP not taken", func(e *emu.Emulator) { e.RegFile().WriteReg(3, 0x7) }, uint16(0xE39E), uint16(0x202)),
		Entry("SKNP taken", func(e *emu.Emulator) { e.RegFile().WriteReg(3, 0x7) }, uint16(0xE3A1), uint16(0x204)),
		Entry("SKNP not taken", func(e *emu.Emulator) {
			e.RegFile().WriteReg(3, 0x7)
			e.Keypad().Set(0x7, true)
		}, uint16(0xE3A1), uint16(0x202)),
	)

	Describe("LD Vx, K", func() {
		It("should not advance PC while no key is pressed", func() {
			load(0xF40A)
			e.Timers().Delay = 3

			for i := 0; i < 3; i++ {
				result := e.Step()
				Expect(result.Err).NotTo(HaveOccurred())
				Expect(result.Waiting).To(BeTrue())
				Expect(e.RegFile().PC).To(Equal(uint16(0x200)))
				Expect(e.State()).To(Equal(emu.StateAwaitingKey))
			}
			Expect(e.Timers().Delay).To(BeZero())
		})

		It("should store the lowest pressed key and advance", func() {
			load(0xF40A)
			e.Keypad().Set(0xC, true)
			e.Keypad().Set(0x5, true)

			result := e.Step()

			Expect(result.Waiting).To(BeFalse())
			Expect(e.RegFile().ReadReg(4)).To(Equal(uint8(0x5)))
			Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
			Expect(e.State()).To(Equal(emu.StateReady))
		})

		It("should resume once a key arrives", func() {
			load(0xF40A)
			Expect(e.Step().Waiting).To(BeTrue())

			e.Keypad().SetState([emu.NumKeys]bool{0xE: true})
			Expect(e.Step().Waiting).To(BeFalse())
			Expect(e.RegFile().ReadReg(4)).To(Equal(uint8(0xE)))
		})
	})
})
