// Command boundless-demo is an interactive sketchpad on an unbounded
// canvas. Draw with the left mouse button, pan with the right button or
// arrow keys, zoom with the wheel, and save or load the drawing with S
// and L.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/gocanvas/boundless"
	"github.com/gocanvas/boundless/quad"
)

const (
	screenW = 960
	screenH = 960

	// Pixels per window unit at zoom level 1.
	baseScale = 320

	saveFile = "boundless-demo.bin"
)

var palette = []quad.RGBA{
	quad.FromColor(colornames.Black),
	quad.FromColor(colornames.Steelblue),
	quad.FromColor(colornames.Crimson),
	quad.FromColor(colornames.Seagreen),
	quad.FromColor(colornames.Darkorange),
}

type game struct {
	canvas *boundless.Canvas
	color  int

	drawing bool
	panning bool
	lastX   float32
	lastY   float32
}

func newGame() (*game, error) {
	c, err := boundless.NewCanvas()
	if err != nil {
		return nil, err
	}
	return &game{canvas: c}, nil
}

// scale returns pixels per window unit at the current zoom level.
func (g *game) scale() float32 {
	return baseScale * g.canvas.ZoomLevel()
}

// toWindow maps a screen position to window units.
func (g *game) toWindow(sx, sy int) (float32, float32) {
	px, py := g.canvas.PanOffset()
	s := g.scale()
	return (float32(sx)-screenW/2)/s + px, (float32(sy)-screenH/2)/s + py
}

// toScreen maps a point in window units to screen pixels.
func (g *game) toScreen(p quad.Point) (float32, float32) {
	px, py := g.canvas.PanOffset()
	s := g.scale()
	return (p.X-px)*s + screenW/2, (p.Y-py)*s + screenH/2
}

func (g *game) Update() error {
	cx, cy := ebiten.CursorPosition()
	wx, wy := g.toWindow(cx, cy)

	if err := g.handleKeys(); err != nil {
		return err
	}

	// Freehand drawing: one segment per tick while the button is held.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.drawing && (wx != g.lastX || wy != g.lastY) {
			err := g.canvas.Stroke(quad.Pt(g.lastX, g.lastY), quad.Pt(wx, wy))
			if err != nil {
				boundless.Logger().Debug("stroke rejected", "err", err)
			}
		}
		g.drawing = true
		g.lastX, g.lastY = wx, wy
	} else {
		g.drawing = false
	}

	// Panning drags the plane under the cursor.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if g.panning {
			if err := g.canvas.Pan(g.lastX-wx, g.lastY-wy); err != nil {
				return err
			}
		}
		g.panning = true
		// Recompute: the pan just moved the window under the cursor.
		g.lastX, g.lastY = g.toWindow(cx, cy)
	} else {
		g.panning = false
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		factor := float32(1 + 0.1*dy)
		if err := g.canvas.Zoom(factor); err != nil {
			return err
		}
	}
	return nil
}

func (g *game) handleKeys() error {
	const step = 0.08
	var dx, dy float32
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += step
	}
	if dx != 0 || dy != 0 {
		if err := g.canvas.Pan(dx/g.canvas.ZoomLevel(), dy/g.canvas.ZoomLevel()); err != nil {
			return err
		}
	}

	for i := range palette {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit1 + ebiten.Key(i)) {
			g.color = i
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.save(); err != nil {
			log.Printf("save: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if err := g.load(); err != nil {
			log.Printf("load: %v", err)
		}
	}
	return nil
}

func (g *game) save() error {
	f, err := os.Create(saveFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := g.canvas.Export(f); err != nil {
		return err
	}
	log.Printf("saved drawing to %s", saveFile)
	return nil
}

func (g *game) load() error {
	f, err := os.Open(saveFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := g.canvas.Import(f); err != nil {
		return err
	}
	log.Printf("loaded drawing from %s", saveFile)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.White)

	// Keep the stroke weight steady on screen across zoom levels.
	g.canvas.SetStyle(quad.Style{
		Width: 0.008 / g.canvas.ZoomLevel(),
		Color: palette[g.color],
	})

	s := g.scale()
	for _, pl := range g.canvas.Visible() {
		p := pl.Primitive
		x1, y1 := g.toScreen(pl.Dest.Project(quad.Pt(p.X1, p.Y1)))
		x2, y2 := g.toScreen(pl.Dest.Project(quad.Pt(p.X2, p.Y2)))
		w := p.Width * pl.Dest.Width() / 2 * s
		if w < 1 {
			w = 1
		}
		vector.StrokeLine(screen, x1, y1, x2, y2, w, p.Color.Color(), true)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

func main() {
	boundless.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	g, err := newGame()
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("boundless")
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
