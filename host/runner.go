package host

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/clock"
)

// Runner drives an emulator: poll keys, step, render, beep, wait.
// A Runner and its emulator must be used from a single goroutine.
type Runner struct {
	emulator *emu.Emulator
	renderer Renderer
	beeper   Beeper
	keys     KeySource
	pacer    clock.Pacer
	logger   logr.Logger

	tone   bool
	frames uint64
}

// RunnerOption is a functional option for configuring the Runner.
type RunnerOption func(*Runner)

// WithRenderer sets the renderer. Without one frames are dropped.
func WithRenderer(r Renderer) RunnerOption {
	return func(run *Runner) {
		run.renderer = r
	}
}

// WithBeeper sets the beeper.
func WithBeeper(b Beeper) RunnerOption {
	return func(run *Runner) {
		run.beeper = b
	}
}

// WithKeySource sets the key source. Without one no key is ever pressed.
func WithKeySource(k KeySource) RunnerOption {
	return func(run *Runner) {
		run.keys = k
	}
}

// WithPacer sets the step pacer. The default runs unpaced.
func WithPacer(p clock.Pacer) RunnerOption {
	return func(run *Runner) {
		run.pacer = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger logr.Logger) RunnerOption {
	return func(run *Runner) {
		run.logger = logger
	}
}

// NewRunner creates a runner for e.
func NewRunner(e *emu.Emulator, opts ...RunnerOption) *Runner {
	r := &Runner{
		emulator: e,
		pacer:    clock.Unpaced{},
		logger:   logr.Discard(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Frames returns the number of frames rendered.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Run loops until the key source asks to quit, ctx is done or a step fails.
// A quit returns nil; otherwise the cause is returned.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if r.keys != nil && r.keys.Poll(r.emulator.Keypad()) {
			r.logger.V(1).Info("quit requested", "instructions", r.emulator.InstructionCount())
			return nil
		}

		result := r.emulator.Step()
		if result.Err != nil {
			return fmt.Errorf("step %d: %w", r.emulator.InstructionCount()+1, result.Err)
		}

		if err := r.present(); err != nil {
			return err
		}

		if err := r.pacer.Wait(ctx); err != nil {
			return err
		}
	}
}

// present pushes the frame and tone state out after a step.
func (r *Runner) present() error {
	display := r.emulator.Display()
	if display.Dirty() {
		if r.renderer != nil {
			if err := r.renderer.Render(display); err != nil {
				return fmt.Errorf("render: %w", err)
			}
		}
		display.ClearDirty()
		r.frames++
		r.logger.V(2).Info("frame", "n", r.frames)
	}

	tone := r.emulator.SoundActive()
	if tone != r.tone {
		r.tone = tone
		if r.beeper != nil {
			r.beeper.SetTone(tone)
		}
		r.logger.V(1).Info("tone", "on", tone)
	}

	return nil
}
