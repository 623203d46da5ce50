package lvexplorer

import (
	"math"
	"testing"
)

func TestBlinkOpacity(t *testing.T) {
	if v := BlinkOpacity(0); !nearly(v, 0.65, eps) {
		t.Fatalf("BlinkOpacity(0) = %g, want 0.65", v)
	}
	// sin(8t) = 1 at t = pi/16.
	if v := BlinkOpacity(math.Pi / 16); !nearly(v, 1.0, eps) {
		t.Fatalf("BlinkOpacity(pi/16) = %g, want 1.0", v)
	}
	// Bounded and deterministic in elapsed time.
	for ti := 0.0; ti < 10; ti += 0.01 {
		v := BlinkOpacity(ti)
		if v < 0.3-eps || v > 1.0+eps {
			t.Fatalf("BlinkOpacity(%g) = %g out of [0.3, 1.0]", ti, v)
		}
		if v != BlinkOpacity(ti) {
			t.Fatalf("BlinkOpacity not deterministic at t=%g", ti)
		}
	}
}

func TestRenderFrame_AdditiveOverplot(t *testing.T) {
	cam := testCamera()

	one := BuildPointCloud([]GalaxyRecord{placed(0, "a", 0, 0, 0, 9)}, 12, false)
	two := BuildPointCloud([]GalaxyRecord{
		placed(0, "a", 0, 0, 0, 9),
		placed(1, "b", 0, 0, 0, 9),
	}, 12, false)

	fb := NewFrameBuffer(200, 200)
	defer fb.Close()

	imgOne := RenderFrame(fb, one, cam, FrameOptions{})
	rOne := imgOne.Pix[(100*200+100)*4]

	imgTwo := RenderFrame(fb, two, cam, FrameOptions{})
	rTwo := imgTwo.Pix[(100*200+100)*4]

	// Two coincident galaxies brighten, never occlude.
	if rTwo < rOne {
		t.Fatalf("overplot darkened: one=%d two=%d", rOne, rTwo)
	}
	if rOne == 0 {
		t.Fatalf("single point rendered nothing at the screen center")
	}
}

func TestRenderFrame_EmptyCloud(t *testing.T) {
	fb := NewFrameBuffer(64, 64)
	defer fb.Close()

	img := RenderFrame(fb, BuildPointCloud(nil, 9, false), testCamera(), FrameOptions{})
	for i := 0; i < 64*64; i++ {
		if img.Pix[i*4] != 0 || img.Pix[i*4+1] != 0 || img.Pix[i*4+2] != 0 {
			t.Fatalf("empty cloud rendered a lit pixel at %d", i)
		}
		if img.Pix[i*4+3] != 255 {
			t.Fatalf("frame must be opaque")
		}
	}
}

func TestRenderFrame_MarkerBlinks(t *testing.T) {
	cam := testCamera()
	pc := BuildPointCloud(nil, 9, false)
	marker := &Marker{Pos: V3(0, 0, 0)}

	fb := NewFrameBuffer(200, 200)
	defer fb.Close()

	// Marker drawn on an otherwise empty frame.
	bright := RenderFrame(fb, pc, cam, FrameOptions{Marker: marker, Time: math.Pi / 16})
	gBright := bright.Pix[(100*200+100)*4+1]
	if gBright == 0 {
		t.Fatalf("marker rendered nothing")
	}

	// At the trough of the blink the glyph is dimmer but still visible.
	dim := RenderFrame(fb, pc, cam, FrameOptions{Marker: marker, Time: 3 * math.Pi / 16})
	gDim := dim.Pix[(100*200+100)*4+1]
	if gDim == 0 {
		t.Fatalf("marker vanished at blink trough")
	}
	if gDim >= gBright {
		t.Fatalf("blink has no effect: bright=%d dim=%d", gBright, gDim)
	}
}

func TestFrameBuffer_ClearBetweenFrames(t *testing.T) {
	cam := testCamera()
	pc := BuildPointCloud([]GalaxyRecord{placed(0, "a", 0, 0, 0, 9)}, 12, false)

	fb := NewFrameBuffer(100, 100)
	defer fb.Close()

	first := RenderFrame(fb, pc, cam, FrameOptions{})
	second := RenderFrame(fb, pc, cam, FrameOptions{})
	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatalf("frames differ at byte %d: buffers not cleared between frames", i)
		}
	}
}

func TestRenderFrame_MarkerLineToOrigin(t *testing.T) {
	cam := testCamera()
	pc := BuildPointCloud(nil, 9, false)

	fb := NewFrameBuffer(200, 200)
	defer fb.Close()

	// The marker sits far enough right that its glyph cannot reach a pixel
	// a quarter of the way along the origin line.
	withMarker := RenderFrame(fb, pc, cam, FrameOptions{Marker: &Marker{Pos: V3(6, 0, 0)}})
	onLine := withMarker.Pix[(100*200+125)*4+1]
	if onLine == 0 {
		t.Fatalf("no line pixel between marker and origin")
	}
	offLine := withMarker.Pix[(60*200+125)*4+1]
	if offLine != 0 {
		t.Fatalf("line lit a pixel off its path: %d", offLine)
	}

	bare := RenderFrame(fb, pc, cam, FrameOptions{})
	if bare.Pix[(100*200+125)*4+1] != 0 {
		t.Fatalf("line pixel lit without a marker")
	}
}

func TestRenderFrame_DistanceFogDims(t *testing.T) {
	cam := testCamera()
	fb := NewFrameBuffer(200, 200)
	defer fb.Close()

	// Same galaxy once near and once deep along the view axis; both project
	// to the screen center, the deep one through far denser fog.
	near := BuildPointCloud([]GalaxyRecord{placed(0, "a", 0, 0, 0, 9)}, 12, false)
	deep := BuildPointCloud([]GalaxyRecord{placed(0, "a", 0, 0, -490, 9)}, 12, false)

	nearPix := RenderFrame(fb, near, cam, FrameOptions{}).Pix[(100*200+100)*4]
	deepPix := RenderFrame(fb, deep, cam, FrameOptions{}).Pix[(100*200+100)*4]

	if deepPix == 0 {
		t.Fatalf("fog must dim, not erase")
	}
	if deepPix >= nearPix {
		t.Fatalf("fog has no effect: near=%d deep=%d", nearPix, deepPix)
	}
}
