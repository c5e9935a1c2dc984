package host

import (
	"sort"

	"github.com/sarchlab/c8sim/emu"
)

// KeyEvent presses or releases a key at a given poll.
type KeyEvent struct {
	// Poll is the 1-based poll number the event applies at.
	Poll    uint64
	Key     uint8
	Pressed bool
}

// ScriptedKeys replays a fixed list of key events. It is used for headless
// runs and tests.
type ScriptedKeys struct {
	events []KeyEvent
	next   int
	polls  uint64
	quitAt uint64
}

// NewScriptedKeys creates a key source replaying events. quitAt is the poll
// that requests a quit; 0 never quits.
func NewScriptedKeys(quitAt uint64, events ...KeyEvent) *ScriptedKeys {
	sorted := append([]KeyEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Poll < sorted[j].Poll
	})

	return &ScriptedKeys{events: sorted, quitAt: quitAt}
}

// Poll applies every event due at or before this poll.
func (s *ScriptedKeys) Poll(keypad *emu.Keypad) bool {
	s.polls++

	if s.quitAt > 0 && s.polls >= s.quitAt {
		return true
	}

	for s.next < len(s.events) && s.events[s.next].Poll <= s.polls {
		ev := s.events[s.next]
		keypad.Set(ev.Key, ev.Pressed)
		s.next++
	}

	return false
}

// Polls returns the number of polls so far.
func (s *ScriptedKeys) Polls() uint64 {
	return s.polls
}
