package host_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/go-logr/logr/funcr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/host"
)

type failingRenderer struct{}

func (failingRenderer) Render(*emu.Display) error {
	return errors.New("display gone")
}

var _ = Describe("Runner", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator(emu.WithRandomSource(emu.NewSequenceSource(0)))
	})

	load := func(words ...uint16) {
		Expect(e.LoadProgram(program(words...))).To(Succeed())
	}

	It("should render once per draw and clear the redraw flag", func() {
		// I = glyph "0", DRW V0, V0, 5, then spin
		load(0xA000, 0xD005, 0x1204)
		var out bytes.Buffer
		renderer := host.NewTextRenderer(&out)
		runner := host.NewRunner(e,
			host.WithRenderer(renderer),
			host.WithKeySource(host.NewScriptedKeys(6)),
		)

		Expect(runner.Run(context.Background())).To(Succeed())

		Expect(e.InstructionCount()).To(Equal(uint64(5)))
		Expect(renderer.Frames()).To(Equal(uint64(1)))
		Expect(runner.Frames()).To(Equal(uint64(1)))
		Expect(e.Display().Dirty()).To(BeFalse())
		Expect(out.String()).To(HavePrefix("frame 1\n####...."))
		Expect(strings.Count(out.String(), "\n")).To(Equal(1 + emu.DisplayHeight))
	})

	It("should follow the sound timer with the beeper", func() {
		// V3 = 3, ST = V3, spin
		load(0x6303, 0xF318, 0x1204)
		beeper := &host.NopBeeper{}
		keys := host.NewScriptedKeys(5)
		runner := host.NewRunner(e, host.WithBeeper(beeper), host.WithKeySource(keys))

		Expect(runner.Run(context.Background())).To(Succeed())

		Expect(e.InstructionCount()).To(Equal(uint64(4)))
		Expect(beeper.Changes).To(Equal(2))
		Expect(beeper.On).To(BeFalse())
	})

	It("should resume a key wait once a scripted key goes down", func() {
		// LD V1, K, then spin
		load(0xF10A, 0x1202)
		keys := host.NewScriptedKeys(5, host.KeyEvent{Poll: 3, Key: 7, Pressed: true})
		runner := host.NewRunner(e, host.WithKeySource(keys))

		Expect(runner.Run(context.Background())).To(Succeed())

		Expect(e.RegFile().ReadReg(1)).To(Equal(uint8(7)))
		Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
		Expect(e.State()).To(Equal(emu.StateReady))
		Expect(keys.Polls()).To(Equal(uint64(5)))
	})

	It("should stop on a failing step", func() {
		load(0x0000)
		runner := host.NewRunner(e)

		err := runner.Run(context.Background())

		var unknown *emu.UnknownOpcodeError
		Expect(errors.As(err, &unknown)).To(BeTrue())
		Expect(unknown.PC).To(Equal(uint16(0x200)))
		Expect(err).To(MatchError(emu.ErrUnknownOpcode))
	})

	It("should stop at the instruction limit", func() {
		e = emu.NewEmulator(emu.WithMaxInstructions(10))
		load(0x1200)

		err := host.NewRunner(e).Run(context.Background())

		Expect(err).To(MatchError(emu.ErrMaxInstructions))
		Expect(e.InstructionCount()).To(Equal(uint64(10)))
	})

	It("should stop when the context is cancelled", func() {
		load(0x1200)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(host.NewRunner(e).Run(ctx)).To(MatchError(context.Canceled))
		Expect(e.InstructionCount()).To(BeZero())
	})

	It("should report renderer failures", func() {
		load(0xA000, 0xD005)
		runner := host.NewRunner(e, host.WithRenderer(failingRenderer{}))

		Expect(runner.Run(context.Background())).To(MatchError(ContainSubstring("display gone")))
	})

	It("should log the tone through the configured logger", func() {
		load(0x6303, 0xF318, 0x1204)
		var logs []string
		logger := funcr.New(func(prefix, args string) {
			logs = append(logs, args)
		}, funcr.Options{Verbosity: 1})
		runner := host.NewRunner(e,
			host.WithLogger(logger),
			host.WithKeySource(host.NewScriptedKeys(3)),
		)

		Expect(runner.Run(context.Background())).To(Succeed())

		Expect(logs).To(ContainElement(ContainSubstring(`"msg"="tone" "on"=true`)))
		Expect(logs).To(ContainElement(ContainSubstring(`"msg"="quit requested"`)))
	})
})

var _ = Describe("ScriptedKeys", func() {
	It("should apply events in poll order and release keys", func() {
		keypad := &emu.Keypad{}
		keys := host.NewScriptedKeys(0,
			host.KeyEvent{Poll: 2, Key: 0xA, Pressed: false},
			host.KeyEvent{Poll: 1, Key: 0xA, Pressed: true},
		)

		Expect(keys.Poll(keypad)).To(BeFalse())
		Expect(keypad.Pressed(0xA)).To(BeTrue())

		Expect(keys.Poll(keypad)).To(BeFalse())
		Expect(keypad.Pressed(0xA)).To(BeFalse())
	})

	It("should never quit when quitAt is zero", func() {
		keys := host.NewScriptedKeys(0)
		keypad := &emu.Keypad{}
		for i := 0; i < 100; i++ {
			Expect(keys.Poll(keypad)).To(BeFalse())
		}
	})
})
