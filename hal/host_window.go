//go:build !tinygo && cgo

package hal

import (
	"image"

	"tinycon/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Scale      int
	StepBudget int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards
// keyboard input to the UART. It blocks until the window closes.
func RunWindow(hostCfg HostConfig, newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	h, err := newHostHAL(hostCfg)
	if err != nil {
		return err
	}
	defer h.Close()

	g := &hostGame{h: h, r: newHostRunner(h, newApp), budget: cfg.StepBudget}
	ebiten.SetWindowTitle("tinycon (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	r       *hostRunner
	budget  int
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	gen     uint64
}

func (g *hostGame) Update() error {
	select {
	case <-g.h.serial.Interrupted():
		return ebiten.Termination
	default:
	}
	g.h.kbd.poll()
	g.h.t.step(1)
	return g.r.run(g.budget)
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.gen = 0
	}

	gen := fb.snapshotRGB565(g.scratch)
	if gen == g.gen {
		screen.DrawImage(g.fbImg, nil)
		return
	}
	g.gen = gen

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
