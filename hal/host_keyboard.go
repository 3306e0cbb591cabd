//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard turns window key presses into UART receive bytes, the way a
// terminal attached to the board would send them.
type hostKeyboard struct {
	serial *hostSerial
}

func newHostKeyboard(serial *hostSerial) *hostKeyboard {
	return &hostKeyboard{serial: serial}
}

func (k *hostKeyboard) poll() {
	if k.serial == nil {
		return
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl {
		emitCtrl := func(key ebiten.Key, b byte) {
			if inpututil.IsKeyJustPressed(key) {
				k.serial.inject(b)
			}
		}
		emitCtrl(ebiten.KeyG, 0x07)
		emitCtrl(ebiten.KeyH, 0x08)
		emitCtrl(ebiten.KeyJ, '\n')
		emitCtrl(ebiten.KeyM, '\r')
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x20 || r > 0x7e {
			continue
		}
		k.serial.inject(byte(r))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		k.serial.inject('\r')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		k.serial.inject(0x7f)
	}
}
