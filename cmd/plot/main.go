// Command plot JIT compiles the expression given on the command line and
// graphs it. Arrow keys pan, + and - zoom, the cursor shows f(x) readouts.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/aschmolck/trivial-jit/pkg/jit"
)

const (
	screenW = 800
	screenH = 600
)

var (
	axisColor  = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}
	curveColor = color.RGBA{R: 0x40, G: 0xC0, B: 0x40, A: 0xFF}
)

type Game struct {
	src        string
	f          *jit.Function
	xmin, xmax float64
	samples    []float64 // f sampled once per column, refreshed on pan/zoom
	dirty      bool
}

func NewGame(src string, f *jit.Function) *Game {
	return &Game{src: src, f: f, xmin: -10, xmax: 10, dirty: true}
}

func (g *Game) Update() error {
	span := g.xmax - g.xmin
	pan := span * 0.01
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.xmin -= pan
		g.xmax -= pan
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.xmin += pan
		g.xmax += pan
		g.dirty = true
	}
	// Zoom about the window center.
	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyKPAdd) {
		g.xmin += pan
		g.xmax -= pan
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyKPSubtract) {
		g.xmin -= pan
		g.xmax += pan
		g.dirty = true
	}
	if g.dirty {
		g.samples = g.f.Table(g.xmin, g.xmax, screenW)
		g.dirty = false
	}
	return nil
}

// yRange picks plot bounds from the finite samples, with a margin.
func (g *Game) yRange() (float64, float64) {
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, y := range g.samples {
		if math.IsInf(y, 0) || math.IsNaN(y) {
			continue
		}
		ymin = math.Min(ymin, y)
		ymax = math.Max(ymax, y)
	}
	if ymin > ymax {
		return -1, 1 // nothing finite on screen
	}
	if ymin == ymax {
		return ymin - 1, ymax + 1
	}
	margin := (ymax - ymin) * 0.05
	return ymin - margin, ymax + margin
}

func (g *Game) Draw(screen *ebiten.Image) {
	ymin, ymax := g.yRange()

	toSY := func(y float64) float64 {
		return screenH * (ymax - y) / (ymax - ymin)
	}
	toSX := func(x float64) float64 {
		return screenW * (x - g.xmin) / (g.xmax - g.xmin)
	}

	// Axes, when in view.
	if g.xmin <= 0 && 0 <= g.xmax {
		sx := float32(toSX(0))
		vector.StrokeLine(screen, sx, 0, sx, screenH, 1, axisColor, false)
	}
	if ymin <= 0 && 0 <= ymax {
		sy := float32(toSY(0))
		vector.StrokeLine(screen, 0, sy, screenW, sy, 1, axisColor, false)
	}

	// Curve, one segment per column, broken at poles and NaNs.
	prevOK := false
	var prevY float32
	for i, y := range g.samples {
		ok := !math.IsInf(y, 0) && !math.IsNaN(y)
		sy := float32(toSY(y))
		if ok && prevOK {
			vector.StrokeLine(screen, float32(i-1), prevY, float32(i), sy, 2, curveColor, true)
		}
		prevY = sy
		prevOK = ok
	}

	cx, _ := ebiten.CursorPosition()
	x := g.xmin + (g.xmax-g.xmin)*float64(cx)/screenW
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("f(x) = %s\nx: [%.4g, %.4g]\nf(%.4g) = %.6g", g.src, g.xmin, g.xmax, x, g.f.Call(x)),
		8, 8)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	flag.Parse()
	src := strings.Join(flag.Args(), " ")
	if src == "" {
		src = "√(x^2+1) - x"
	}

	f, err := jit.Compile(src)
	if err != nil {
		log.Fatalf("compiling %q: %v", src, err)
	}
	defer f.Close()

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("trivial-jit: " + src)
	if err := ebiten.RunGame(NewGame(src, f)); err != nil {
		log.Fatal(err)
	}
}
