//go:build tinygo && baremetal && !picocalc

package hal

// New returns a bare Pico/Pico 2 HAL. The board has no panel, so Display
// reports no framebuffer and the console lives on the UART alone.
func New() HAL {
	return newTinyGoHAL(nil)
}
