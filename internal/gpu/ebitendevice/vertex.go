// Package ebitendevice implements gpu.Device on ebiten. Kage has no vertex
// stage, so vertex shaders name a built-in CPU program with a
// "//kage:vertex <name>" directive and only the fragment stage runs on the GPU.
package ebitendevice

import (
	"strings"

	"github.com/pkg/errors"
)

const vertexDirective = "//kage:vertex"

// Vertex is a transformed vertex in normalized device coordinates.
type Vertex struct {
	X, Y       float32
	R, G, B, A float32
}

// Uniforms holds the vec2 uniforms set on a program.
type Uniforms map[string][2]float32

// VertexProgram transforms one attribute tuple.
type VertexProgram struct {
	Attrib     string
	Components int
	Run        func(in []float32, u Uniforms) Vertex
}

var vertexPrograms = map[string]VertexProgram{
	"cell": {Attrib: "cell", Components: 3, Run: cellVertex},
}

// cellVertex places a cell corner at xy*scale+offset, white when the flag is
// set and black otherwise.
func cellVertex(in []float32, u Uniforms) Vertex {
	scale, offset := u["scale"], u["offset"]
	v := Vertex{
		X: in[0]*scale[0] + offset[0],
		Y: in[1]*scale[1] + offset[1],
		A: 1,
	}
	if in[2] > 0 {
		v.R, v.G, v.B = 1, 1, 1
	}
	return v
}

// lookupVertexProgram resolves the directive on the first non-blank line.
func lookupVertexProgram(source string) (VertexProgram, error) {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, ok := strings.CutPrefix(line, vertexDirective)
		if !ok {
			return VertexProgram{}, errors.Errorf("expected %q directive, got %q", vertexDirective, line)
		}
		name = strings.TrimSpace(name)
		prog, ok := vertexPrograms[name]
		if !ok {
			return VertexProgram{}, errors.Errorf("unknown vertex program %q", name)
		}
		return prog, nil
	}
	return VertexProgram{}, errors.New("empty vertex source")
}

// toPixels maps normalized device coordinates onto a w x h target whose
// origin is the top-left corner.
func toPixels(x, y float32, w, h int) (float32, float32) {
	return (x + 1) / 2 * float32(w), (1 - y) / 2 * float32(h)
}

// maxBatch is the largest triangle-aligned vertex run addressable with
// uint16 indices.
const maxBatch = 65532

// span is a run of n vertices starting at start.
type span struct {
	start, n int
}

// planDraw splits the draw of vertices [first, first+count) into spans of at
// most maxBatch vertices, clipped to the vertices held in a buffer of
// bufLen floats.
func planDraw(first, count, bufLen, stride int) []span {
	if first < 0 || stride <= 0 {
		return nil
	}
	count = min(count, bufLen/stride-first)
	if count <= 0 {
		return nil
	}
	spans := make([]span, 0, (count+maxBatch-1)/maxBatch)
	for start := first; start < first+count; start += maxBatch {
		spans = append(spans, span{start: start, n: min(maxBatch, first+count-start)})
	}
	return spans
}

// identityIndices grows buf so that buf[i] == i for every i < n.
func identityIndices(buf []uint16, n int) []uint16 {
	for i := len(buf); i < n; i++ {
		buf = append(buf, uint16(i))
	}
	return buf
}

// refCount tracks a shader object that programs may outlive.
type refCount struct {
	refs    int
	deleted bool
}

func (r *refCount) retain() { r.refs++ }

// release drops one program reference and reports whether the shader can
// be disposed.
func (r *refCount) release() bool {
	r.refs--
	return r.done()
}

// markDeleted records DeleteShader and reports whether the shader can be
// disposed.
func (r *refCount) markDeleted() bool {
	r.deleted = true
	return r.done()
}

func (r *refCount) done() bool { return r.deleted && r.refs <= 0 }
