package emu_test

import (
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

// framebuffer builds an expected framebuffer with the listed pixels set.
func framebuffer(pixels ...[2]int) [emu.DisplayHeight][emu.DisplayWidth]bool {
	var fb [emu.DisplayHeight][emu.DisplayWidth]bool
	for _, p := range pixels {
		fb[p[1]][p[0]] = true
	}
	return fb
}

var _ = Describe("Drawing", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	load := func(words ...uint16) {
		Expect(e.LoadProgram(program(words...))).To(Succeed())
	}

	Describe("DRW", func() {
		It("should XOR a font glyph onto the framebuffer and set the redraw flag", func() {
			// V0 = 1, V1 = 2, I = glyph "1", DRW V0, V1, 5
			load(0x6001, 0x6102, 0xA005, 0xD015)

			_, err := e.Run(4)
			Expect(err).NotTo(HaveOccurred())

			// Glyph "1": 0x20 0x60 0x20 0x20 0x70
			want := framebuffer(
				[2]int{3, 2},
				[2]int{2, 3}, [2]int{3, 3},
				[2]int{3, 4},
				[2]int{3, 5},
				[2]int{2, 6}, [2]int{3, 6}, [2]int{4, 6},
			)
			Expect(cmp.Diff(want, e.Display().Rows())).To(BeEmpty())
			Expect(e.RegFile().ReadReg(0xF)).To(BeZero())
			Expect(e.Display().Dirty()).To(BeTrue())
		})

		It("should erase on a second draw and report the collision", func() {
			load(0x6008, 0x6108, 0xA000, 0xD015, 0xD015)

			_, err := e.Run(4)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Display().Pixel(8, 8)).To(BeTrue())
			Expect(e.RegFile().ReadReg(0xF)).To(BeZero())

			result := e.Step()
			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Drew).To(BeTrue())
			Expect(e.Display().Rows()).To(Equal(framebuffer()))
			Expect(e.RegFile().ReadReg(0xF)).To(Equal(uint8(1)))
		})

		It("should keep VF set when only an early row collides", func() {
			// Draw one pixel at (0,0), then a 2-row sprite whose first row
			// hits it and whose second row lands on empty space.
			load(0xA300, 0xD001, 0xA310, 0xD002)
			e.Memory().Write8(0x300, 0x80)
			e.Memory().Write8(0x310, 0x80)
			e.Memory().Write8(0x311, 0x80)

			_, err := e.Run(4)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.RegFile().ReadReg(0xF)).To(Equal(uint8(1)))
			Expect(e.Display().Pixel(0, 0)).To(BeFalse())
			Expect(e.Display().Pixel(0, 1)).To(BeTrue())
		})

		It("should clear VF before reading VF as a coordinate", func() {
			e.RegFile().WriteReg(0xF, 10)
			load(0xA000, 0xDFF1)

			_, err := e.Run(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Display().Pixel(0, 0)).To(BeTrue())
			Expect(e.Display().Pixel(10, 10)).To(BeFalse())
		})

		It("should wrap pixels past the edges by default", func() {
			e.Memory().Write8(0x300, 0xFF)
			e.Memory().Write8(0x301, 0xFF)
			// V0 = 60, V1 = 31, 2 rows of 8 pixels
			load(0x603C, 0x611F, 0xA300, 0xD012)

			_, err := e.Run(4)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Display().Pixel(63, 31)).To(BeTrue())
			Expect(e.Display().Pixel(0, 31)).To(BeTrue())
			Expect(e.Display().Pixel(3, 31)).To(BeTrue())
			Expect(e.Display().Pixel(4, 31)).To(BeFalse())
			Expect(e.Display().Pixel(60, 0)).To(BeTrue())
			Expect(e.Display().Pixel(3, 0)).To(BeTrue())
		})

		It("should clip pixels past the edges under SpriteClip", func() {
			e = emu.NewEmulator(emu.WithSpritePolicy(emu.SpriteClip))
			e.Memory().Write8(0x300, 0xFF)
			e.Memory().Write8(0x301, 0xFF)
			load(0x603C, 0x611F, 0xA300, 0xD012)

			_, err := e.Run(4)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Display().Pixel(60, 31)).To(BeTrue())
			Expect(e.Display().Pixel(63, 31)).To(BeTrue())
			Expect(e.Display().Pixel(0, 31)).To(BeFalse())
			Expect(e.Display().Pixel(60, 0)).To(BeFalse())
		})

		It("should wrap the origin before clipping", func() {
			e = emu.NewEmulator(emu.WithSpritePolicy(emu.SpriteClip))
			// V0 = 66 -> column 2, V1 = 33 -> row 1
			load(0x6042, 0x6121, 0xA000, 0xD011)

			_, err := e.Run(4)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Display().Pixel(2, 1)).To(BeTrue())
		})

		It("should draw nothing for a zero-row sprite but still flag a redraw", func() {
			load(0xA000, 0xD010)

			_, err := e.Run(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Display().Rows()).To(Equal(framebuffer()))
			Expect(e.Display().Dirty()).To(BeTrue())
		})
	})

	Describe("CLS", func() {
		It("should clear every pixel without touching the redraw flag", func() {
			load(0xA000, 0xD005, 0x00E0)
			_, err := e.Run(2)
			Expect(err).NotTo(HaveOccurred())
			e.Display().ClearDirty()

			Expect(e.Step().Err).NotTo(HaveOccurred())
			Expect(e.Display().Rows()).To(Equal(framebuffer()))
			Expect(e.Display().Dirty()).To(BeFalse())
		})
	})

	Describe("String", func() {
		It("should render set pixels as '#'", func() {
			load(0xA000, 0xD001)
			_, err := e.Run(2)
			Expect(err).NotTo(HaveOccurred())

			text := e.Display().String()
			Expect(text).To(HavePrefix("####...."))
			Expect(text).To(HaveLen((emu.DisplayWidth + 1) * emu.DisplayHeight))
		})
	})
})
