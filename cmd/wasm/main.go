//go:build js && wasm

package main

import (
	"bytes"
	"syscall/js"

	lv "lvexplorer/pkg/lvexplorer"
)

// The wasm build keeps one loaded catalog and the most recent projection so
// a hosting page can load once and then filter/render/pick per interaction.
var (
	records   []lv.GalaxyRecord
	lastCloud *lv.PointCloud
	lastProj  []lv.ProjectedPoint
	lastCam   lv.Camera
	lastW     int
	lastH     int
	starfield = lv.DefaultStarfield()
)

func main() {
	js.Global().Set("loadCatalog", js.FuncOf(loadCatalog))
	js.Global().Set("renderFrame", js.FuncOf(renderFrame))
	js.Global().Set("pick", js.FuncOf(pick))
	select {} // block forever
}

// loadCatalog parses and normalizes catalog bytes. One-shot per page load:
// a parse failure is terminal and no partial data is kept.
func loadCatalog(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("usage: loadCatalog(fileBytes)")
	}

	jsBytes := args[0]
	fileBytes := make([]byte, jsBytes.Get("length").Int())
	js.CopyBytesToGo(fileBytes, jsBytes)

	rows, err := lv.ParseCatalog(bytes.NewReader(fileBytes))
	if err != nil {
		records = nil
		return errorResult("catalog parse error: " + err.Error())
	}

	var metrics *lv.NormalizeMetrics
	records, metrics = lv.Normalize(rows)

	return js.ValueOf(map[string]interface{}{
		"rows":          metrics.RowsIn,
		"records":       metrics.Emitted,
		"droppedCoords": metrics.DroppedCoords,
		"massScale":     metrics.Scale.String(),
	})
}

func filterStateFromJS(opts js.Value) lv.FilterState {
	state := lv.DefaultFilterState()
	if opts.Type() != js.TypeObject {
		return state
	}
	if v := opts.Get("maxDist"); v.Type() == js.TypeNumber {
		state.MaxDist = v.Float()
	}
	if v := opts.Get("minMass"); v.Type() == js.TypeNumber {
		state.MinMass = v.Float()
	}
	if v := opts.Get("minMV"); v.Type() == js.TypeNumber {
		state.MinMV = v.Float()
	}
	if v := opts.Get("maxMV"); v.Type() == js.TypeNumber {
		state.MaxMV = v.Float()
	}
	if v := opts.Get("localGroupOnly"); v.Type() == js.TypeBoolean {
		state.LocalGroupOnly = v.Bool()
	}
	if v := opts.Get("search"); v.Type() == js.TypeString {
		state.SearchQuery = v.String()
	}
	return state
}

// renderFrame filters, projects, and software-renders one frame, returning
// RGBA pixels plus what was drawn.
func renderFrame(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("usage: renderFrame(width, height, options)")
	}
	width := args[0].Int()
	height := args[1].Int()
	if width <= 0 || height <= 0 {
		return errorResult("viewport must be positive")
	}

	var opts js.Value
	if len(args) >= 3 {
		opts = args[2]
	}
	state := filterStateFromJS(opts)

	threshold := 9.0
	timeSec := 0.0
	var marker *lv.Marker
	if opts.Type() == js.TypeObject {
		if v := opts.Get("massThreshold"); v.Type() == js.TypeNumber {
			threshold = v.Float()
		}
		if v := opts.Get("time"); v.Type() == js.TypeNumber {
			timeSec = v.Float()
		}
		if v := opts.Get("locate"); v.Type() == js.TypeObject {
			pos := lv.SphericalToCartesian(
				v.Get("ra").Float(), v.Get("dec").Float(), v.Get("dist").Float())
			marker = &lv.Marker{Pos: pos}
		}
	}

	filtered := lv.ApplyFilter(records, state)
	pc := lv.BuildPointCloud(filtered, threshold, state.SearchQuery != "")
	if marker == nil && pc.MarkerTarget != nil {
		marker = &lv.Marker{Pos: *pc.MarkerTarget}
	}

	cam := lv.NewCamera()
	if opts.Type() == js.TypeObject {
		if v := opts.Get("camera"); v.Type() == js.TypeObject {
			cam.Position = lv.V3(
				v.Get("x").Float(), v.Get("y").Float(), v.Get("z").Float())
		}
	}

	fb := lv.NewFrameBuffer(width, height)
	defer fb.Close()
	img := lv.RenderFrame(fb, pc, cam, lv.FrameOptions{
		Time:       timeSec,
		Marker:     marker,
		Starfield:  starfield,
		DrawLabels: true,
	})

	lastCloud = pc
	lastProj = pc.Project(cam, width, height)
	lastCam = cam
	lastW, lastH = width, height

	pixels := js.Global().Get("Uint8Array").New(len(img.Pix))
	js.CopyBytesToJS(pixels, img.Pix)
	return js.ValueOf(map[string]interface{}{
		"pixels": pixels,
		"shown":  len(filtered),
		"total":  len(records),
		"labels": len(pc.Labels),
	})
}

// pick resolves the hovered galaxy for the most recently rendered frame.
func pick(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || lastCloud == nil {
		return js.Null()
	}
	idx, ok := lastCloud.PickNearest(lastProj, lastCam, lastW, lastH, args[0].Float(), args[1].Float())
	if !ok {
		return js.Null()
	}
	rec := lastCloud.Records[idx]
	result := map[string]interface{}{
		"id":      rec.ID,
		"name":    rec.Name,
		"distMpc": rec.DistMpc,
		"massLog": rec.MassLog,
	}
	if rec.HasMV {
		result["mv"] = rec.MV
	}
	return js.ValueOf(result)
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
