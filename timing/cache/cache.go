// Package cache provides an instruction-fetch cache model using Akita cache
// components.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/c8sim/emu"
)

// Config holds cache configuration parameters.
type Config struct {
	// Size in bytes
	Size int `json:"size"`
	// Associativity (number of ways)
	Associativity int `json:"associativity"`
	// BlockSize in bytes (cache line size)
	BlockSize int `json:"block_size"`
	// HitLatency in cycles
	HitLatency uint64 `json:"hit_latency"`
	// MissLatency in cycles
	MissLatency uint64 `json:"miss_latency"`
}

// DefaultConfig returns a small 2-way cache: 16 lines of 16 bytes.
func DefaultConfig() Config {
	return Config{
		Size:          256,
		Associativity: 2,
		BlockSize:     16,
		HitLatency:    1,
		MissLatency:   8,
	}
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Reads         uint64
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	Invalidations uint64
	Cycles        uint64
}

// HitRate returns Hits / Reads, or 0 before the first read.
func (s Statistics) HitRate() float64 {
	if s.Reads == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Reads)
}

// BackingStore interface for the memory behind the cache.
type BackingStore interface {
	// Read fetches data from the backing store.
	Read(addr uint64, size int) []byte
}

// Cache is a read-only instruction cache. Stores go straight to memory and
// invalidate the line they hit, so the cache never holds dirty data.
type Cache struct {
	// Configuration
	config Config

	// Akita cache directory for tag/state management
	directory *akitacache.DirectoryImpl

	// Data storage - indexed by (setID * associativity + wayID)
	dataStore [][]byte

	// Statistics
	stats Statistics

	backing BackingStore
}

var _ emu.FetchCache = (*Cache)(nil)

// New creates a new cache with the given configuration.
func New(config Config, backing BackingStore) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]byte, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]byte, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		backing:   backing,
	}
}

// Factory returns an emu.FetchCacheFactory that builds caches over the
// emulator's memory.
func Factory(config Config) emu.FetchCacheFactory {
	return func(memory *emu.Memory) emu.FetchCache {
		return New(config, NewMemoryBacking(memory))
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

// blockIndex computes the index into dataStore for a block.
func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func (c *Cache) blockAddr(addr uint16) uint64 {
	return (uint64(addr) / uint64(c.config.BlockSize)) * uint64(c.config.BlockSize)
}

// Read16 reads the big-endian word at addr. A word that straddles two lines
// costs two accesses.
func (c *Cache) Read16(addr uint16) uint16 {
	hi := addr & emu.AddressMask
	lo := (addr + 1) & emu.AddressMask

	hiData := c.access(hi)
	if c.blockAddr(hi) == c.blockAddr(lo) {
		return uint16(hiData[c.offset(hi)])<<8 | uint16(hiData[c.offset(lo)])
	}

	b0 := hiData[c.offset(hi)]
	loData := c.access(lo)
	return uint16(b0)<<8 | uint16(loData[c.offset(lo)])
}

func (c *Cache) offset(addr uint16) uint64 {
	return uint64(addr) % uint64(c.config.BlockSize)
}

// access returns the line holding addr, filling it on a miss.
func (c *Cache) access(addr uint16) []byte {
	c.stats.Reads++

	blockAddr := c.blockAddr(addr)
	block := c.directory.Lookup(0, blockAddr)

	if block != nil && block.IsValid {
		c.stats.Hits++
		c.stats.Cycles += c.config.HitLatency
		c.directory.Visit(block) // Update LRU
		return c.dataStore[c.blockIndex(block)]
	}

	c.stats.Misses++
	c.stats.Cycles += c.config.MissLatency
	return c.handleMiss(blockAddr)
}

// handleMiss fills a victim line from the backing store.
func (c *Cache) handleMiss(blockAddr uint64) []byte {
	victim := c.directory.FindVictim(blockAddr)
	victimData := c.dataStore[c.blockIndex(victim)]

	if victim.IsValid {
		c.stats.Evictions++
	}

	copy(victimData, c.backing.Read(blockAddr, c.config.BlockSize))

	// Tag stores the block-aligned address
	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false

	c.directory.Visit(victim)

	return victimData
}

// Invalidate marks the line holding addr as invalid.
func (c *Cache) Invalidate(addr uint16) {
	block := c.directory.Lookup(0, c.blockAddr(addr&emu.AddressMask))
	if block != nil && block.IsValid {
		block.IsValid = false
		c.stats.Invalidations++
	}
}

// ValidLines returns the number of valid lines.
func (c *Cache) ValidLines() int {
	n := 0
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.IsValid {
				n++
			}
		}
	}
	return n
}

// Reset invalidates all cache lines. Statistics are kept.
func (c *Cache) Reset() {
	c.directory.Reset()
}
