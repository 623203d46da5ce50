package main

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	lv "lvexplorer/pkg/lvexplorer"
)

const (
	spriteSize   = 64
	rotateSpeed  = 0.008
	zoomFraction = 0.1
)

// Game drives the interactive viewer: it owns the filter state, rebuilds
// the point cloud when that state changes, and renders the cloud with
// additive sprite splats every frame.
type Game struct {
	width, height int

	records  []lv.GalaxyRecord
	filtered []lv.GalaxyRecord
	state    lv.FilterState
	thresh   float64

	pc        *lv.PointCloud
	projected []lv.ProjectedPoint
	stars     []lv.Vec3

	cam   lv.Camera
	orbit *lv.OrbitController

	locatePos  lv.Vec3
	showLocate bool

	hoverIdx int
	hovering bool

	searchMode bool
	searchBuf  []rune
	runeBuf    []rune

	dragging       bool
	lastMX, lastMY int

	start time.Time

	sprite *ebiten.Image
	font   *text.GoTextFaceSource
}

func runViewer(records []lv.GalaxyRecord, opts options) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}

	g := &Game{
		width:      opts.width,
		height:     opts.height,
		records:    records,
		state:      opts.state,
		thresh:     opts.threshold,
		stars:      lv.DefaultStarfield(),
		cam:        lv.NewCamera(),
		orbit:      lv.NewOrbitController(),
		locatePos:  lv.SphericalToCartesian(opts.ra, opts.dec, opts.locateDist),
		showLocate: opts.locate,
		start:      time.Now(),
		sprite:     buildGlowSprite(spriteSize),
		font:       src,
	}
	g.refilter()

	ebiten.SetWindowSize(opts.width, opts.height)
	ebiten.SetWindowTitle("Local Volume Explorer")
	return ebiten.RunGame(g)
}

// refilter recomputes the derived record subset and rebuilds the attribute
// buffers wholesale. Nothing is patched in place: the next frame reads a
// complete, consistent buffer set.
func (g *Game) refilter() {
	g.filtered = lv.ApplyFilter(g.records, g.state)
	g.pc = lv.BuildPointCloud(g.filtered, g.thresh, g.state.SearchQuery != "")
	g.projected = nil
	g.hovering = false
}

func (g *Game) Update() error {
	changed := false

	if g.searchMode {
		changed = g.updateSearchInput()
	} else {
		changed = g.updateKeys()
	}

	g.updateOrbit()
	if changed {
		g.refilter()
	}

	g.orbit.Update()
	g.orbit.Apply(&g.cam)
	g.projected = g.pc.Project(g.cam, g.width, g.height)

	// Picking re-resolves on every frame the cursor is inside the view;
	// outside, the hover is dropped.
	mx, my := ebiten.CursorPosition()
	if mx >= 0 && my >= 0 && mx < g.width && my < g.height {
		idx, ok := g.pc.PickNearest(g.projected, g.cam, g.width, g.height, float64(mx), float64(my))
		g.hoverIdx, g.hovering = idx, ok
	} else {
		g.hovering = false
	}
	return nil
}

func (g *Game) updateSearchInput() bool {
	g.runeBuf = ebiten.AppendInputChars(g.runeBuf[:0])
	for _, r := range g.runeBuf {
		if r >= ' ' {
			g.searchBuf = append(g.searchBuf, r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.searchBuf) > 0 {
		g.searchBuf = g.searchBuf[:len(g.searchBuf)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.searchMode = false
		g.state.SearchQuery = string(g.searchBuf)
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.searchMode = false
		g.searchBuf = g.searchBuf[:0]
	}
	return false
}

func (g *Game) updateKeys() bool {
	changed := false
	adjust := func(v *float64, delta, lo, hi float64) {
		*v = math.Min(hi, math.Max(lo, *v+delta))
		changed = true
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		adjust(&g.state.MaxDist, 0.5, 0, 15)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		adjust(&g.state.MaxDist, -0.5, 0, 15)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		adjust(&g.state.MinMass, 0.25, 0, 12)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		adjust(&g.state.MinMass, -0.25, 0, 12)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		adjust(&g.thresh, 0.1, 6, 12)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		adjust(&g.thresh, -0.1, 6, 12)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.state.LocalGroupOnly = !g.state.LocalGroupOnly
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.showLocate = !g.showLocate
	case inpututil.IsKeyJustPressed(ebiten.KeySlash):
		g.searchMode = true
		g.searchBuf = g.searchBuf[:0]
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if g.state.SearchQuery != "" {
			g.state.SearchQuery = ""
			changed = true
		}
	}
	return changed
}

func (g *Game) updateOrbit() {
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			g.orbit.Rotate(float64(g.lastMX-mx)*rotateSpeed, float64(my-g.lastMY)*rotateSpeed)
		}
		g.dragging = true
		g.lastMX, g.lastMY = mx, my
	} else {
		g.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.orbit.Zoom(-wy * g.orbit.Radius * zoomFraction)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	proj := lv.NewProjector(g.cam, g.width, g.height)
	g.drawStarfield(screen, proj)
	g.drawCloud(screen)
	g.drawMarkers(screen, proj)
	g.drawLabels(screen, proj)
	g.drawHUD(screen)
	g.drawHoverInfo(screen)
}

func (g *Game) drawStarfield(screen *ebiten.Image, proj *lv.Projector) {
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter
	for _, s := range g.stars {
		x, y, depth, ok := proj.Project(s)
		if !ok {
			continue
		}
		c := lv.StarfieldColor
		g.drawSprite(screen, op, x, y, lv.PerspectiveSize(lv.StarPointSize, depth),
			float32(c.R), float32(c.G), float32(c.B),
			float32(lv.StarfieldOpacity*lv.FogFactor(depth)))
	}
}

func (g *Game) drawCloud(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter
	for _, p := range g.projected {
		g.drawSprite(screen, op, p.X, p.Y, p.Size,
			float32(p.Color.R), float32(p.Color.G), float32(p.Color.B),
			float32(lv.FogFactor(p.Depth)))
	}
}

func (g *Game) drawMarkers(screen *ebiten.Image, proj *lv.Projector) {
	blink := float32(lv.BlinkOpacity(time.Since(g.start).Seconds()))
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter

	draw := func(pos lv.Vec3) {
		if x, y, depth, ok := proj.Project(pos); ok {
			c := lv.MarkerColor
			g.drawSprite(screen, op, x, y, lv.PerspectiveSize(lv.MarkerSize, depth),
				float32(c.R), float32(c.G), float32(c.B),
				blink*float32(lv.FogFactor(depth)))
		}
	}
	if g.pc.MarkerTarget != nil {
		draw(*g.pc.MarkerTarget)
	}
	if g.showLocate {
		g.drawMarkerLine(screen, proj, g.locatePos)
		draw(g.locatePos)
	}
}

// drawMarkerLine strokes the translucent line tying the locate marker back
// to the origin.
func (g *Game) drawMarkerLine(screen *ebiten.Image, proj *lv.Projector, pos lv.Vec3) {
	x0, y0, _, ok0 := proj.Project(lv.Vec3{})
	x1, y1, _, ok1 := proj.Project(pos)
	if !ok0 || !ok1 {
		return
	}
	c := lv.MarkerColor
	a := lv.MarkerLineOpacity
	line := color.RGBA{
		R: uint8(c.R * a * 255),
		G: uint8(c.G * a * 255),
		B: uint8(c.B * a * 255),
		A: uint8(a * 255),
	}
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, line, true)
}

// drawSprite splats one glow sprite; size is the footprint diameter in
// pixels.
func (g *Game) drawSprite(screen *ebiten.Image, op *ebiten.DrawImageOptions, x, y, size float64, r, gg, b, a float32) {
	if size < 1 {
		size = 1
	}
	scale := size / spriteSize
	op.GeoM.Reset()
	op.GeoM.Translate(-spriteSize/2, -spriteSize/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.Reset()
	op.ColorScale.Scale(r*a, gg*a, b*a, a)
	screen.DrawImage(g.sprite, op)
}

func (g *Game) drawLabels(screen *ebiten.Image, proj *lv.Projector) {
	face := &text.GoTextFace{Source: g.font, Size: 13}
	for _, l := range g.pc.Labels {
		x, y, _, ok := proj.Project(l.Pos)
		if !ok {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.Scale(0.9, 0.9, 0.9, 0.9)
		text.Draw(screen, l.Name, face, op)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	face := &text.GoTextFace{Source: g.font, Size: 14}

	line := fmt.Sprintf("%d / %d galaxies   dist <= %.1f Mpc   log M* >= %.2f   massive > %.1f",
		len(g.filtered), len(g.records), g.state.MaxDist, g.state.MinMass, g.thresh)
	if g.state.LocalGroupOnly {
		line += "   [Local Group]"
	}
	if g.searchMode {
		line += fmt.Sprintf("   search: %s_", string(g.searchBuf))
	} else if g.state.SearchQuery != "" {
		line += fmt.Sprintf("   search: %q", g.state.SearchQuery)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.ColorScale.Scale(0.8, 0.8, 0.8, 1)
	text.Draw(screen, line, face, op)

	help := "drag: orbit  wheel: zoom  arrows: dist/mass  [ ]: threshold  g: local group  /: search  l: marker"
	hop := &text.DrawOptions{}
	hop.GeoM.Translate(10, float64(g.height)-24)
	hop.ColorScale.Scale(0.45, 0.45, 0.45, 1)
	text.Draw(screen, help, face, hop)
}

func (g *Game) drawHoverInfo(screen *ebiten.Image) {
	if !g.hovering {
		return
	}
	rec := g.pc.Records[g.hoverIdx]
	mx, my := ebiten.CursorPosition()

	lines := []string{
		rec.Name,
		fmt.Sprintf("Dist: %.2f Mpc", rec.DistMpc),
	}
	if rec.HasMV {
		lines = append(lines, fmt.Sprintf("M_V: %.2f", rec.MV))
	}
	if rec.MassLog > 0 {
		lines = append(lines, fmt.Sprintf("log M*: %.2f", rec.MassLog))
	}

	x := float32(mx + 15)
	y := float32(my + 15)
	w := float32(0)
	for _, l := range lines {
		if lw := float32(len(l)) * 8; lw > w {
			w = lw
		}
	}
	h := float32(len(lines))*18 + 10
	vector.DrawFilledRect(screen, x, y, w+16, h, color.RGBA{0, 0, 0, 180}, false)

	face := &text.GoTextFace{Source: g.font, Size: 14}
	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x)+8, float64(y)+5+float64(i)*18)
		op.ColorScale.Scale(1, 1, 1, 1)
		text.Draw(screen, l, face, op)
	}
}

func (g *Game) Layout(w, h int) (int, int) { return g.width, g.height }

// buildGlowSprite rasterizes the shared sprite shading contract into a
// premultiplied white texture the GPU path splats per point.
func buildGlowSprite(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - float64(size)/2) / float64(size)
			dy := (float64(y) + 0.5 - float64(size)/2) / float64(size)
			a := lv.SpriteAlpha(math.Sqrt(dx*dx + dy*dy))
			if a > 1 {
				a = 1
			}
			v := byte(a * 255)
			i := (y*size + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = v, v, v, v
		}
	}
	img.WritePixels(pixels)
	return img
}
