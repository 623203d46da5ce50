package lvexplorer

import "math"

const (
	// pointSizeScale is the perspective sizing constant: a point with
	// declared size s at view-space depth d renders s*pointSizeScale/d
	// pixels across.
	pointSizeScale = 300.0

	// pickRadiusUnits is the minimum hit footprint for picking, declared
	// in the same render-space units as point sizes.
	pickRadiusUnits = 1.0

	// labelOffset shifts a galaxy label off its point so the glow does not
	// swallow the text.
	labelOffset = 0.5
)

// Label is a floating name anchored near a massive galaxy.
type Label struct {
	Name string
	Pos  Vec3
}

// PointCloud holds the per-point GPU-style attribute buffers for one
// filtered record set, plus everything derived from it: labels for massive
// galaxies, the search-marker target, and the bounding sphere used as the
// picking broad phase. Buffers are rebuilt wholesale on every filter or
// threshold change, never patched.
type PointCloud struct {
	Records []GalaxyRecord

	Positions []float32 // x,y,z per point
	Colors    []float32 // r,g,b per point
	Sizes     []float32 // declared size per point

	Labels []Label

	// MarkerTarget is the position of the active search match, nil when no
	// non-empty search is active or nothing matched. With several matches
	// the first in iteration order wins.
	MarkerTarget *Vec3

	Center Vec3
	Radius float64
}

// BuildPointCloud maps the filtered records to parallel attribute buffers.
// searchActive tells the cloud whether IsMatch annotations came from a
// non-empty query and should drive the marker.
func BuildPointCloud(records []GalaxyRecord, massThreshold float64, searchActive bool) *PointCloud {
	pc := &PointCloud{
		Records:   records,
		Positions: make([]float32, 0, len(records)*3),
		Colors:    make([]float32, 0, len(records)*3),
		Sizes:     make([]float32, 0, len(records)),
	}

	for _, rec := range records {
		pc.Positions = append(pc.Positions, float32(rec.X), float32(rec.Y), float32(rec.Z))
		c := MassColor(rec.MassLog)
		pc.Colors = append(pc.Colors, float32(c.R), float32(c.G), float32(c.B))
		pc.Sizes = append(pc.Sizes, float32(SizeForMass(rec.MassLog)))

		if IsMassive(rec.MassLog, massThreshold) && rec.Name != "" {
			pc.Labels = append(pc.Labels, Label{
				Name: rec.Name,
				Pos:  V3(rec.X+labelOffset, rec.Y+labelOffset, rec.Z),
			})
		}
		if searchActive && rec.IsMatch && pc.MarkerTarget == nil {
			p := V3(rec.X, rec.Y, rec.Z)
			pc.MarkerTarget = &p
		}
	}

	pc.computeBounds()
	return pc
}

// computeBounds recomputes the bounding sphere. It runs on every build so
// picking stays correct after any filter change.
func (pc *PointCloud) computeBounds() {
	n := len(pc.Sizes)
	if n == 0 {
		pc.Center = Vec3{}
		pc.Radius = 0
		return
	}
	var sum Vec3
	for i := 0; i < n; i++ {
		sum = sum.Add(V3(float64(pc.Positions[i*3]), float64(pc.Positions[i*3+1]), float64(pc.Positions[i*3+2])))
	}
	pc.Center = sum.Mul(1 / float64(n))

	maxR2 := 0.0
	for i := 0; i < n; i++ {
		d := V3(float64(pc.Positions[i*3]), float64(pc.Positions[i*3+1]), float64(pc.Positions[i*3+2])).Sub(pc.Center)
		if r2 := d.Dot(d); r2 > maxR2 {
			maxR2 = r2
		}
	}
	pc.Radius = math.Sqrt(maxR2)
}

// ProjectedPoint is one point mapped to screen space.
type ProjectedPoint struct {
	Index int     // index into PointCloud.Records
	X, Y  float64 // screen pixels
	Depth float64 // view-space distance, positive in front of the camera
	Size  float64 // on-screen footprint diameter in pixels
	Color RGB
}

// Projector maps scene points to screen pixels for one camera and viewport.
type Projector struct {
	view   Mat4
	mvp    Mat4
	width  float64
	height float64
	near   float64
}

// NewProjector builds the view/projection transform once per frame.
func NewProjector(cam Camera, width, height int) *Projector {
	aspect := 1.0
	if height != 0 {
		aspect = float64(width) / float64(height)
	}
	view := cam.View()
	return &Projector{
		view:   view,
		mvp:    Mat4Mul(cam.Projection(aspect), view),
		width:  float64(width),
		height: float64(height),
		near:   cam.Near,
	}
}

// Project maps one scene point. ok is false when the point is behind the
// near plane.
func (p *Projector) Project(v Vec3) (x, y, depth float64, ok bool) {
	h := Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}
	viewPos := Mat4MulV4(p.view, h)
	depth = -viewPos.Z
	if depth <= p.near {
		return 0, 0, depth, false
	}
	clip := Mat4MulV4(p.mvp, h)
	if clip.W <= 0 {
		return 0, 0, depth, false
	}
	ndcX := clip.X / clip.W
	ndcY := clip.Y / clip.W
	x = (ndcX*0.5 + 0.5) * p.width
	y = (1 - (ndcY*0.5 + 0.5)) * p.height
	return x, y, depth, true
}

// Project maps every point of the cloud to screen space, culling points
// behind the near plane. The result slice is freshly allocated: callers may
// keep it for picking until the next projection.
func (pc *PointCloud) Project(cam Camera, width, height int) []ProjectedPoint {
	proj := NewProjector(cam, width, height)
	out := make([]ProjectedPoint, 0, len(pc.Sizes))
	for i := 0; i < len(pc.Sizes); i++ {
		v := V3(float64(pc.Positions[i*3]), float64(pc.Positions[i*3+1]), float64(pc.Positions[i*3+2]))
		x, y, depth, ok := proj.Project(v)
		if !ok {
			continue
		}
		out = append(out, ProjectedPoint{
			Index: i,
			X:     x,
			Y:     y,
			Depth: depth,
			Size:  float64(pc.Sizes[i]) * pointSizeScale / depth,
			Color: RGB{float64(pc.Colors[i*3]), float64(pc.Colors[i*3+1]), float64(pc.Colors[i*3+2])},
		})
	}
	return out
}

// PickNearest resolves the projected point nearest to the pointer whose
// rendered footprint (at least the reference pick footprint) contains it.
// It returns the index into the cloud's record slice. Every call resolves
// from scratch; nothing is cached between pointer events.
func (pc *PointCloud) PickNearest(points []ProjectedPoint, cam Camera, width, height int, px, py float64) (int, bool) {
	if len(points) == 0 {
		return 0, false
	}

	// Broad phase: ignore pointers well outside the projected bounding
	// sphere of the whole cloud.
	proj := NewProjector(cam, width, height)
	if cx, cy, depth, ok := proj.Project(pc.Center); ok {
		screenR := pc.Radius * pointSizeScale / depth
		margin := screenR + pickRadiusUnits*pointSizeScale/depth + 64
		dx, dy := px-cx, py-cy
		if dx*dx+dy*dy > margin*margin {
			return 0, false
		}
	}

	best := -1
	bestDist := math.MaxFloat64
	for _, p := range points {
		hit := p.Size
		if ref := pickRadiusUnits * pointSizeScale / p.Depth; ref > hit {
			hit = ref
		}
		hit /= 2
		dx, dy := px-p.X, py-p.Y
		d := math.Sqrt(dx*dx + dy*dy)
		if d <= hit && d < bestDist {
			bestDist = d
			best = p.Index
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// PerspectiveSize is the point sizing contract shared by every backend:
// the on-screen footprint diameter, in pixels, of a declared point size at
// a view-space depth.
func PerspectiveSize(declared, depth float64) float64 {
	return declared * pointSizeScale / depth
}

// fogDensity is the exponential-squared distance fog coefficient. The fog
// color is the black background, so fogging is a pure attenuation.
const fogDensity = 0.002

// FogFactor is the fraction of a point's brightness that survives distance
// fog at a view-space depth: exp(-(density*depth)^2).
func FogFactor(depth float64) float64 {
	d := fogDensity * depth
	return math.Exp(-d * d)
}

// SpriteAlpha is the point shading contract shared by every backend: a
// Gaussian falloff plus a sharper core, fully transparent beyond half the
// footprint. r is the distance from the point center in footprint units,
// so the visible disc spans r in [0, 0.5].
func SpriteAlpha(r float64) float64 {
	if r > 0.5 {
		return 0
	}
	glow := math.Exp(-r * r * 8)
	core := 1 - smoothstep(0, 0.2, r)
	return 0.8*glow + 0.4*core
}

// smoothstep is the standard GLSL smooth Hermite step.
func smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
