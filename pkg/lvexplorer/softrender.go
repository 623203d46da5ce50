package lvexplorer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FrameBuffer is the software renderer's target: one float32 accumulation
// Mat per color channel. Splats add into the channels (overlap brightens,
// nothing occludes) and tone-mapping clamps to 8-bit at the end.
type FrameBuffer struct {
	Width, Height int

	r, g, b Mat
	scratch Mat
}

// NewFrameBuffer allocates a frame buffer. Close it when done: the native
// backend holds OpenCV mats.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:   width,
		Height:  height,
		r:       NewMatWithSize(height, width),
		g:       NewMatWithSize(height, width),
		b:       NewMatWithSize(height, width),
		scratch: NewMatWithSize(height, width),
	}
}

func (fb *FrameBuffer) Clear() {
	fb.r.SetToZero()
	fb.g.SetToZero()
	fb.b.SetToZero()
}

func (fb *FrameBuffer) Close() {
	fb.r.Close()
	fb.g.Close()
	fb.b.Close()
	fb.scratch.Close()
}

// FrameOptions selects the optional layers of one software-rendered frame.
type FrameOptions struct {
	// Time is seconds since render start; it drives the marker blink.
	Time float64
	// Marker, when non-nil, is drawn over the cloud regardless of depth.
	Marker *Marker
	// Starfield points are splatted dimly behind the catalog and blurred
	// into a haze.
	Starfield []Vec3
	// DrawLabels enables massive-galaxy name labels.
	DrawLabels bool
}

// RenderFrame rasterizes one frame of the point cloud, matching the
// shading contract of the interactive viewer: perspective point sizing,
// SpriteAlpha falloff, exponential distance fog, additive blending without
// depth writes.
func RenderFrame(fb *FrameBuffer, pc *PointCloud, cam Camera, opts FrameOptions) *image.RGBA {
	fb.Clear()
	cr := fb.r.DataFloat32()
	cg := fb.g.DataFloat32()
	cb := fb.b.DataFloat32()

	proj := NewProjector(cam, fb.Width, fb.Height)

	if len(opts.Starfield) > 0 {
		for _, s := range opts.Starfield {
			x, y, depth, ok := proj.Project(s)
			if !ok {
				continue
			}
			size := PerspectiveSize(StarPointSize, depth)
			fb.splat(cr, cg, cb, x, y, size, StarfieldColor, StarfieldOpacity*FogFactor(depth))
		}
		fb.blur()
	}

	for _, p := range pc.Project(cam, fb.Width, fb.Height) {
		fb.splat(cr, cg, cb, p.X, p.Y, p.Size, p.Color, FogFactor(p.Depth))
	}

	if opts.Marker != nil {
		fb.drawLine(cr, cg, cb, proj, Vec3{}, opts.Marker.Pos, MarkerColor, MarkerLineOpacity)
		if x, y, depth, ok := proj.Project(opts.Marker.Pos); ok {
			size := PerspectiveSize(MarkerSize, depth)
			fb.splat(cr, cg, cb, x, y, size, MarkerColor, BlinkOpacity(opts.Time)*FogFactor(depth))
		}
	}

	img := fb.toRGBA()
	if opts.DrawLabels {
		for _, l := range pc.Labels {
			if x, y, _, ok := proj.Project(l.Pos); ok {
				drawLabel(img, int(x), int(y), l.Name)
			}
		}
	}
	return img
}

// splat accumulates one soft point into the channel buffers. size is the
// on-screen footprint diameter in pixels; weight scales the whole sprite
// (the marker blink uses it).
func (fb *FrameBuffer) splat(cr, cg, cb []float32, cx, cy, size float64, c RGB, weight float64) {
	if size < 1 {
		size = 1
	}
	rad := size / 2
	x0 := int(math.Floor(cx - rad))
	x1 := int(math.Ceil(cx + rad))
	y0 := int(math.Floor(cy - rad))
	y1 := int(math.Ceil(cy + rad))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= fb.Width {
		x1 = fb.Width - 1
	}
	if y1 >= fb.Height {
		y1 = fb.Height - 1
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			r := math.Sqrt(dx*dx+dy*dy) / size
			a := SpriteAlpha(r) * weight
			if a <= 0 {
				continue
			}
			idx := y*fb.Width + x
			cr[idx] += float32(c.R * a)
			cg[idx] += float32(c.G * a)
			cb[idx] += float32(c.B * a)
		}
	}
}

// drawLine accumulates a translucent 3D line segment, sampled at roughly
// one-pixel spacing along its screen-space extent. Samples behind the near
// plane are dropped, so a segment crossing the plane is clipped per sample.
func (fb *FrameBuffer) drawLine(cr, cg, cb []float32, proj *Projector, from, to Vec3, c RGB, opacity float64) {
	if from.Sub(to).Len() == 0 {
		return
	}
	steps := 1024
	if x0, y0, _, ok0 := proj.Project(from); ok0 {
		if x1, y1, _, ok1 := proj.Project(to); ok1 {
			dx, dy := x1-x0, y1-y0
			steps = int(math.Ceil(math.Sqrt(dx*dx + dy*dy)))
			if steps < 2 {
				steps = 2
			}
		}
	}

	dir := to.Sub(from)
	for i := 0; i <= steps; i++ {
		p := from.Add(dir.Mul(float64(i) / float64(steps)))
		x, y, depth, ok := proj.Project(p)
		if !ok {
			continue
		}
		px, py := int(x), int(y)
		if px < 0 || py < 0 || px >= fb.Width || py >= fb.Height {
			continue
		}
		a := opacity * FogFactor(depth)
		idx := py*fb.Width + px
		cr[idx] += float32(c.R * a)
		cg[idx] += float32(c.G * a)
		cb[idx] += float32(c.B * a)
	}
}

// blur softens the starfield layer into a faint haze.
func (fb *FrameBuffer) blur() {
	kernel := getGaussianKernel1D(3, 0.8)
	defer kernel.Close()
	for _, ch := range []*Mat{&fb.r, &fb.g, &fb.b} {
		sepFilter2DReflect(*ch, &fb.scratch, kernel, kernel)
		CopyMatTo(fb.scratch, ch)
	}
}

// toRGBA clamps the accumulated channels to 8-bit over a black background.
func (fb *FrameBuffer) toRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	cr := fb.r.DataFloat32()
	cg := fb.g.DataFloat32()
	cb := fb.b.DataFloat32()
	for i := 0; i < fb.Width*fb.Height; i++ {
		img.Pix[i*4+0] = clamp8(cr[i])
		img.Pix[i*4+1] = clamp8(cg[i])
		img.Pix[i*4+2] = clamp8(cb[i])
		img.Pix[i*4+3] = 255
	}
	return img
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func drawLabel(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{230, 230, 230, 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// WritePNG writes a rendered frame to a file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
