//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"sync"
	"time"

	"machine"
)

// The PicoCalc keyboard matrix and battery gauge sit behind an STM32 helper
// MCU on the I2C bus.
const (
	kbdMCUAddr   uint16 = 0x1F
	kbdCmdFIFO   byte   = 0x09
	kbdCmdBat    byte   = 0x0B
	kbdPollEvery        = 2 * time.Millisecond
)

const (
	kbdKeyBackspace byte = 0x08
	kbdKeyEsc       byte = 0xB1
	kbdKeyLeft      byte = 0xB4
	kbdKeyUp        byte = 0xB5
	kbdKeyDown      byte = 0xB6
	kbdKeyRight     byte = 0xB7
	kbdKeyDel       byte = 0xD4
)

type keyboardMCU struct {
	mu    sync.Mutex
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte
}

func initKeyboardMCU() (*keyboardMCU, error) {
	// Prefer I2C1 (stock PicoCalc wiring), but some TinyGo targets expose
	// only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			m := &keyboardMCU{i2c: bus}

			// On boot the helper MCU can be slow to respond, so probe with retries.
			const probeTries = 50
			for i := 0; i < probeTries; i++ {
				m.write[0] = kbdCmdFIFO
				if err := m.i2c.Tx(kbdMCUAddr, m.write[:], m.read[:]); err == nil {
					return m, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	return nil, errors.New("keyboard: I2C unavailable")
}

func (m *keyboardMCU) readFIFO() (KeyEvent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.write[0] = kbdCmdFIFO
	if err := m.i2c.Tx(kbdMCUAddr, m.write[:], m.read[:]); err != nil {
		return KeyEvent{}, false
	}
	if m.read[0] == 0 && m.read[1] == 0 {
		return KeyEvent{}, false
	}

	state := m.read[0]
	code := m.read[1]

	switch state {
	case 0x01: // key down
		return translateKey(code, true)
	case 0x03: // key up
		return translateKey(code, false)
	default:
		// held / unknown: repeats are synthesized by the shell, not here
		return KeyEvent{}, false
	}
}

func translateKey(code byte, press bool) (KeyEvent, bool) {
	switch code {
	case kbdKeyBackspace:
		return KeyEvent{Press: press, Code: KeyBackspace}, true
	case kbdKeyEsc:
		return KeyEvent{Press: press, Code: KeyEscape}, true
	case kbdKeyDel:
		return KeyEvent{Press: press, Code: KeyDelete}, true
	case kbdKeyLeft:
		return KeyEvent{Press: press, Code: KeyLeft}, true
	case kbdKeyRight:
		return KeyEvent{Press: press, Code: KeyRight}, true
	case kbdKeyUp:
		return KeyEvent{Press: press, Code: KeyUp}, true
	case kbdKeyDown:
		return KeyEvent{Press: press, Code: KeyDown}, true
	}

	if !press {
		return KeyEvent{}, false
	}
	r := rune(code)
	if r == '\r' || r == '\n' {
		return KeyEvent{Press: true, Code: KeyEnter}, true
	}
	if r < 0x20 || r > 0x7E {
		return KeyEvent{}, false
	}
	return KeyEvent{Press: true, Rune: r}, true
}

type mcuKeyboard struct {
	ch chan KeyEvent
}

func newMCUKeyboard(mcu *keyboardMCU) *mcuKeyboard {
	dev := &mcuKeyboard{ch: make(chan KeyEvent, 64)}
	go func() {
		defer close(dev.ch)
		for {
			ev, ok := mcu.readFIFO()
			if ok {
				select {
				case dev.ch <- ev:
				default:
				}
			}
			time.Sleep(kbdPollEvery)
		}
	}()
	return dev
}

func (k *mcuKeyboard) Events() <-chan KeyEvent { return k.ch }

type mcuBattery struct {
	mcu *keyboardMCU
}

func (b *mcuBattery) Status() BatteryStatus {
	b.mcu.mu.Lock()
	defer b.mcu.mu.Unlock()

	b.mcu.write[0] = kbdCmdBat
	if err := b.mcu.i2c.Tx(kbdMCUAddr, b.mcu.write[:], b.mcu.read[:]); err != nil {
		return BatteryStatus{}
	}

	// b[1] is the charge percentage; bit 7 of b[0] signals external power.
	pct := int(b.mcu.read[1])
	if pct > 100 {
		pct = 100
	}
	return BatteryStatus{
		Percent: pct,
		USB:     b.mcu.read[0]&0x80 != 0,
		Known:   true,
	}
}
