package main

import (
	"syscall/js"

	"github.com/seqsense/pcgol/mat"
	webgl "github.com/seqsense/webgl-go"

	"github.com/seqsense/pcdinspector/cloud"
	"github.com/seqsense/pcdinspector/pick"
	"github.com/seqsense/pcdinspector/scene"
)

const (
	aVertexPosition = 0
	aVertexColor    = 1
)

var markerColor = mat.Vec3{1, 1, 0}

type pointProgram struct {
	program        webgl.Program
	modelView      webgl.Location
	projection     webgl.Location
	pointSize      webgl.Location
	pointScale     webgl.Location
	color          webgl.Location
	useVertexColor webgl.Location
}

type markerProgram struct {
	program    webgl.Program
	modelView  webgl.Location
	projection webgl.Location
	color      webgl.Location
	opacity    webgl.Location
	size       webgl.Location
}

type axesProgram struct {
	program    webgl.Program
	modelView  webgl.Location
	projection webgl.Location
}

// renderer draws the point layer, the axes helper and the pick marker.
type renderer struct {
	gl *webgl.WebGL

	points [2]pointProgram
	marker markerProgram
	axes   axesProgram

	posBuf, colBuf      webgl.Buffer
	markerBuf           webgl.Buffer
	axesBuf, axesColBuf webgl.Buffer
	nPoints             int
	hasColors           bool
	marker0             pick.Marker
	axesLength          float32
	width, height       int
	bufWidth, bufHeight int
	pixelRatio          float64
	markerPx            float32
}

func newRenderer(gl *webgl.WebGL) (*renderer, error) {
	r := &renderer{gl: gl}
	for _, m := range []scene.Material{scene.Standard, scene.CustomShaded} {
		p, err := newProgram(gl, vsPointsSource, fragmentSource(m))
		if err != nil {
			return nil, err
		}
		r.points[m] = pointProgram{
			program:        p,
			modelView:      gl.GetUniformLocation(p, "uModelViewMatrix"),
			projection:     gl.GetUniformLocation(p, "uProjectionMatrix"),
			pointSize:      gl.GetUniformLocation(p, "uPointSize"),
			pointScale:     gl.GetUniformLocation(p, "uPointScale"),
			color:          gl.GetUniformLocation(p, "uColor"),
			useVertexColor: gl.GetUniformLocation(p, "uUseVertexColor"),
		}
	}

	p, err := newProgram(gl, vsMarkerSource, fsRoundSource)
	if err != nil {
		return nil, err
	}
	r.marker = markerProgram{
		program:    p,
		modelView:  gl.GetUniformLocation(p, "uModelViewMatrix"),
		projection: gl.GetUniformLocation(p, "uProjectionMatrix"),
		color:      gl.GetUniformLocation(p, "uColor"),
		opacity:    gl.GetUniformLocation(p, "uOpacity"),
		size:       gl.GetUniformLocation(p, "uSize"),
	}

	p, err = newProgram(gl, vsAxesSource, fsSource)
	if err != nil {
		return nil, err
	}
	r.axes = axesProgram{
		program:    p,
		modelView:  gl.GetUniformLocation(p, "uModelViewMatrix"),
		projection: gl.GetUniformLocation(p, "uProjectionMatrix"),
	}

	r.posBuf = gl.CreateBuffer()
	r.colBuf = gl.CreateBuffer()
	r.markerBuf = gl.CreateBuffer()
	r.axesBuf = gl.CreateBuffer()
	r.axesColBuf = gl.CreateBuffer()

	gl.BindBuffer(gl.ARRAY_BUFFER, r.axesColBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer([]float32{
		1, 0, 0, 1, 0, 0,
		0, 1, 0, 0, 1, 0,
		0, 0, 1, 0, 0, 1,
	}), gl.STATIC_DRAW)

	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.ClearDepth(1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return r, nil
}

func (r *renderer) setCloud(c *cloud.Cloud) {
	gl := r.gl
	r.nPoints = c.Len()
	r.hasColors = c.HasColors()
	if r.nPoints == 0 {
		return
	}

	pos := make([]float32, 0, r.nPoints*3)
	for _, p := range c.Points() {
		pos = append(pos, p[0], p[1], p[2])
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.posBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(pos), gl.STATIC_DRAW)

	col := make([]float32, 0, r.nPoints*3)
	if r.hasColors {
		for _, rgb := range c.Colors() {
			col = append(col, rgb[0], rgb[1], rgb[2])
		}
	} else {
		for i := 0; i < r.nPoints; i++ {
			col = append(col, 1, 1, 1)
		}
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.colBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(col), gl.STATIC_DRAW)
}

func (r *renderer) setMarker(m pick.Marker) {
	r.marker0 = m
	if !m.Visible() {
		return
	}
	gl := r.gl
	gl.BindBuffer(gl.ARRAY_BUFFER, r.markerBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(m.Position[:]), gl.STATIC_DRAW)
}

func (r *renderer) setAxes(length float32) {
	if r.axesLength == length {
		return
	}
	r.axesLength = length
	gl := r.gl
	gl.BindBuffer(gl.ARRAY_BUFFER, r.axesBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer([]float32{
		0, 0, 0, length, 0, 0,
		0, 0, 0, 0, length, 0,
		0, 0, 0, 0, 0, length,
	}), gl.STATIC_DRAW)
}

// resize updates the drawing buffer size and returns the viewport.
// The drawing buffer has device pixels, while the viewport is in CSS
// pixels as pointer events are.
func (r *renderer) resize() pick.Viewport {
	gl := r.gl
	w, h := gl.Canvas.ClientWidth(), gl.Canvas.ClientHeight()
	ratio := 1.0
	if v := js.Global().Get("devicePixelRatio"); v.Type() == js.TypeNumber {
		ratio = v.Float()
	}
	if w != r.width || h != r.height || ratio != r.pixelRatio {
		r.width, r.height, r.pixelRatio = w, h, ratio
		r.bufWidth, r.bufHeight = bufferSize(w, h, ratio)
		mw, _ := bufferSize(markerSize, 0, ratio)
		r.markerPx = float32(mw)
		gl.Canvas.SetWidth(r.bufWidth)
		gl.Canvas.SetHeight(r.bufHeight)
		gl.Viewport(0, 0, r.bufWidth, r.bufHeight)
	}
	return pick.Viewport{Width: w, Height: h}
}

func (r *renderer) render(cam pick.Camera, s *scene.Scene) {
	gl := r.gl
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if s.Points.Visible && r.nPoints > 0 {
		p := r.points[s.Points.Material]
		gl.UseProgram(p.program)
		gl.UniformMatrix4fv(p.modelView, false, cam.View)
		gl.UniformMatrix4fv(p.projection, false, cam.Projection)
		gl.Uniform1f(p.pointSize, s.Points.PointSize())
		gl.Uniform1f(p.pointScale, float32(r.bufHeight)/2)
		gl.Uniform3fv(p.color, s.Points.Color)
		if s.Points.UseVertexColors(r.hasColors) {
			gl.Uniform1i(p.useVertexColor, 1)
		} else {
			gl.Uniform1i(p.useVertexColor, 0)
		}

		gl.BindBuffer(gl.ARRAY_BUFFER, r.posBuf)
		gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(aVertexPosition)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.colBuf)
		gl.VertexAttribPointer(aVertexColor, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(aVertexColor)
		gl.DrawArrays(gl.POINTS, 0, r.nPoints)
	}

	if s.Axes.Visible {
		r.setAxes(s.Axes.Length)
		gl.UseProgram(r.axes.program)
		gl.UniformMatrix4fv(r.axes.modelView, false, cam.View)
		gl.UniformMatrix4fv(r.axes.projection, false, cam.Projection)

		gl.BindBuffer(gl.ARRAY_BUFFER, r.axesBuf)
		gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(aVertexPosition)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.axesColBuf)
		gl.VertexAttribPointer(aVertexColor, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(aVertexColor)
		gl.DrawArrays(gl.LINES, 0, 6)
	}

	if r.marker0.Visible() {
		gl.UseProgram(r.marker.program)
		gl.UniformMatrix4fv(r.marker.modelView, false, cam.View)
		gl.UniformMatrix4fv(r.marker.projection, false, cam.Projection)
		gl.Uniform3fv(r.marker.color, markerColor)
		gl.Uniform1f(r.marker.opacity, r.marker0.Opacity)
		gl.Uniform1f(r.marker.size, r.markerPx)

		gl.BindBuffer(gl.ARRAY_BUFFER, r.markerBuf)
		gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(aVertexPosition)
		gl.DrawArrays(gl.POINTS, 0, 1)
	}
}
