package viewer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glMesh is the uploaded model: static position and normal buffers, plus a
// dynamic color buffer re-uploaded whenever the session recomposites.
type glMesh struct {
	vao         uint32
	posVBO      uint32
	normalVBO   uint32
	colorVBO    uint32
	vertexCount int32
}

// newGLMesh uploads the unreduced vertex buffers. All three slices have the
// same length: 3 floats per raw vertex, in raw index order, which is exactly
// the order the session's color buffer uses.
func newGLMesh(positions, normals, colors []float32) (*glMesh, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("empty mesh")
	}
	if len(normals) != len(positions) || len(colors) != len(positions) {
		return nil, fmt.Errorf("buffer lengths disagree: pos=%d normal=%d color=%d",
			len(positions), len(normals), len(colors))
	}

	m := &glMesh{vertexCount: int32(len(positions) / 3)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, unsafe.Pointer(&positions[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &m.normalVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.normalVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(normals)*4, unsafe.Pointer(&normals[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.colorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.colorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(colors)*4, unsafe.Pointer(&colors[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return m, nil
}

// UpdateColors replaces the color attribute in place.
func (m *glMesh) UpdateColors(colors []float32) {
	if int32(len(colors)/3) != m.vertexCount {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.colorVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(colors)*4, unsafe.Pointer(&colors[0]))
}

// Draw renders the mesh; the shader program and uniforms must be bound.
func (m *glMesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.BindVertexArray(0)
}

// Destroy frees the GL objects.
func (m *glMesh) Destroy() {
	gl.DeleteBuffers(1, &m.posVBO)
	gl.DeleteBuffers(1, &m.normalVBO)
	gl.DeleteBuffers(1, &m.colorVBO)
	gl.DeleteVertexArrays(1, &m.vao)
}
