// Package config provides the JSON machine configuration for c8sim.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/cache"
)

// MachineConfig holds the interpreter and driver settings.
type MachineConfig struct {
	// CPUHz is the number of Step calls per second the driver paces to.
	// Timers tick once per step. Default: 500.
	CPUHz uint `json:"cpu_hz"`

	// SpritePolicy is "wrap" or "clip". Default: "wrap".
	SpritePolicy string `json:"sprite_policy"`

	// Seed seeds the RND source. 0 seeds from the clock.
	Seed int64 `json:"seed"`

	// MaxInstructions stops execution after this many steps. 0 means no
	// limit.
	MaxInstructions uint64 `json:"max_instructions"`

	// FetchCache enables the instruction-fetch cache model when set.
	FetchCache *cache.Config `json:"fetch_cache,omitempty"`
}

// DefaultMachineConfig returns a MachineConfig with default values.
func DefaultMachineConfig() *MachineConfig {
	return &MachineConfig{
		CPUHz:        500,
		SpritePolicy: emu.SpriteWrap.String(),
	}
}

// LoadConfig loads a MachineConfig from a JSON file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine config file: %w", err)
	}

	config := DefaultMachineConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse machine config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a MachineConfig to a JSON file.
func (c *MachineConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize machine config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write machine config file: %w", err)
	}

	return nil
}

// Validate checks that all values are usable.
func (c *MachineConfig) Validate() error {
	if c.CPUHz == 0 {
		return fmt.Errorf("cpu_hz must be > 0")
	}
	if c.StepInterval() <= 0 {
		return fmt.Errorf("cpu_hz must be at most %d, got %d", uint(time.Second), c.CPUHz)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if fc := c.FetchCache; fc != nil {
		if fc.Associativity <= 0 || fc.BlockSize <= 0 {
			return fmt.Errorf("fetch_cache associativity and block_size must be > 0")
		}
		if fc.Size <= 0 || fc.Size%(fc.Associativity*fc.BlockSize) != 0 {
			return fmt.Errorf("fetch_cache size must be a positive multiple of associativity*block_size")
		}
	}
	return nil
}

// Policy parses SpritePolicy.
func (c *MachineConfig) Policy() (emu.SpritePolicy, error) {
	switch c.SpritePolicy {
	case "", "wrap":
		return emu.SpriteWrap, nil
	case "clip":
		return emu.SpriteClip, nil
	default:
		return 0, fmt.Errorf("sprite_policy must be \"wrap\" or \"clip\", got %q", c.SpritePolicy)
	}
}

// StepInterval returns the wall-clock time between two steps. It is 0 when
// CPUHz is 0 or above one step per nanosecond.
func (c *MachineConfig) StepInterval() time.Duration {
	if c.CPUHz == 0 {
		return 0
	}
	return time.Second / time.Duration(c.CPUHz)
}

// EmulatorOptions translates the config into emulator options.
func (c *MachineConfig) EmulatorOptions(logger logr.Logger) ([]emu.EmulatorOption, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	policy, _ := c.Policy()

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []emu.EmulatorOption{
		emu.WithLogger(logger),
		emu.WithSpritePolicy(policy),
		emu.WithRandomSource(emu.NewRandomSource(seed)),
		emu.WithMaxInstructions(c.MaxInstructions),
	}
	if c.FetchCache != nil {
		opts = append(opts, emu.WithFetchCache(cache.Factory(*c.FetchCache)))
	}

	return opts, nil
}

// Clone returns a deep copy of the MachineConfig.
func (c *MachineConfig) Clone() *MachineConfig {
	out := *c
	if c.FetchCache != nil {
		fc := *c.FetchCache
		out.FetchCache = &fc
	}
	return &out
}
