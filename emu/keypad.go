package emu

// NumKeys is the number of keys on the hex keypad.
const NumKeys = 16

// Keypad holds the pressed state of keys 0x0-0xF. The driver writes it
// before each step; the emulator only reads it.
type Keypad struct {
	keys [NumKeys]bool
}

// Set records the state of one key. Only the low nibble of key is used.
func (k *Keypad) Set(key uint8, pressed bool) {
	k.keys[key&0xF] = pressed
}

// SetState replaces the state of all keys.
func (k *Keypad) SetState(keys [NumKeys]bool) {
	k.keys = keys
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.keys = [NumKeys]bool{}
}

// Pressed reports whether key is down. Only the low nibble of key is used.
func (k *Keypad) Pressed(key uint8) bool {
	return k.keys[key&0xF]
}

// FirstPressed returns the lowest pressed key index.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, down := range k.keys {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}
