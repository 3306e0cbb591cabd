//go:build tinygo && baremetal && picocalc

package hal

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc
// carrier). The ILI9488 panel shows the console mirror.
func New() HAL {
	var fb Framebuffer
	if disp, err := newPicoCalcDisplay(); err == nil {
		fb = disp
	} else {
		fb = newPicoCalcDisplayStub()
	}
	return newTinyGoHAL(fb)
}

type picoCalcFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	lcd  *ili9488
	sums []uint32
}

func (f *picoCalcFramebuffer) Width() int          { return f.w }
func (f *picoCalcFramebuffer) Height() int         { return f.h }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return f.stride }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, rgb565(r, g, b))
}

// Present sends only the row ranges whose contents changed since the last
// call; a console redraw usually touches a few text lines.
func (f *picoCalcFramebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	start := -1
	for y := 0; y < f.h; y++ {
		sum := rowSum(f.buf[y*f.stride : (y+1)*f.stride])
		changed := sum != f.sums[y]
		f.sums[y] = sum
		switch {
		case changed && start < 0:
			start = y
		case !changed && start >= 0:
			if err := f.lcd.blitRows(f.buf, f.w, start, y); err != nil {
				return err
			}
			start = -1
		}
	}
	if start >= 0 {
		return f.lcd.blitRows(f.buf, f.w, start, f.h)
	}
	return nil
}

// rowSum is FNV-1a over one framebuffer row.
func rowSum(row []byte) uint32 {
	h := uint32(2166136261)
	for _, b := range row {
		h ^= uint32(b)
		h *= 16777619
	}
	return h
}

func newPicoCalcDisplay() (*picoCalcFramebuffer, error) {
	lcd, err := initILI9488()
	if err != nil {
		return nil, err
	}
	fb := newPicoCalcDisplayStub()
	fb.lcd = lcd
	return fb, nil
}

func newPicoCalcDisplayStub() *picoCalcFramebuffer {
	const w = 320
	const h = 320
	return &picoCalcFramebuffer{
		w:      w,
		h:      h,
		stride: w * 2,
		buf:    make([]byte, w*h*2),
		sums:   make([]uint32, h),
	}
}
