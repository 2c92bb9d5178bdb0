package model

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"sync"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/nvk/util/collada"
)

// ErrEmptyGeometry is returned when a document carries no geometry.
var ErrEmptyGeometry = errors.New("model: document has no geometry")

// ImportColladaObject reads given file and converts Collada object to
// engine's internal object
func ImportColladaObject(fileContents []byte) (Object, error) {
	var doc collada.Collada
	if err := xml.Unmarshal(fileContents, &doc); err != nil {
		return nil, fmt.Errorf("model.ImportColladaObject(): %s", err)
	}
	if len(doc.Geometries) == 0 {
		return nil, ErrEmptyGeometry
	}

	mesh := doc.Geometries[0].Mesh
	positions, err := findSource(mesh.Source, "positions")
	if err != nil {
		return nil, err
	}
	normals, err := findSource(mesh.Source, "normals")
	if err != nil {
		return nil, err
	}

	// Triangle indices interleave one entry per input semantic.
	stride := len(mesh.Triangles.Inputs)
	if stride == 0 {
		stride = 1
	}

	var vertices []Vertex
	for idx := 0; idx+stride <= len(mesh.Triangles.Index); idx += stride {
		var vert Vertex
		pos := mesh.Triangles.Index[idx] * 3
		vert.Pos = glm.Vec3{
			positions.Floats.Data[pos],
			positions.Floats.Data[pos+1],
			positions.Floats.Data[pos+2],
		}
		if stride > 1 {
			norm := mesh.Triangles.Index[idx+1] * 3
			vert.Normal = glm.Vec3{
				normals.Floats.Data[norm],
				normals.Floats.Data[norm+1],
				normals.Floats.Data[norm+2],
			}
		}
		vert.Color = glm.Vec4{1.0, 1.0, 0.0, 1.0}
		vertices = append(vertices, vert)
	}

	return &ColladaObject{
		vertices: vertices,
	}, nil
}

// ColladaObject is imported from a collada (.dae) file.
// Loaded and held in memory
type ColladaObject struct {
	mutex    sync.RWMutex
	position glm.Mat4
	rotation glm.Mat4

	vertices []Vertex
}

// SetPosition implements interface
func (co *ColladaObject) SetPosition(pos glm.Mat4) {
	co.mutex.Lock()
	co.position = pos
	co.mutex.Unlock()
}

// Position implements interface
func (co *ColladaObject) Position() glm.Mat4 {
	co.mutex.RLock()
	defer co.mutex.RUnlock()
	return co.position
}

// SetRotation implements interface
func (co *ColladaObject) SetRotation(rot glm.Mat4) {
	co.mutex.Lock()
	co.rotation = rot
	co.mutex.Unlock()
}

// Rotation implements interface
func (co *ColladaObject) Rotation() glm.Mat4 {
	co.mutex.RLock()
	defer co.mutex.RUnlock()
	return co.rotation
}

// Vertices implements interface
func (co *ColladaObject) Vertices() []Vertex {
	return co.vertices
}

func findSource(sources []collada.Source, dataType string) (collada.Source, error) {
	for _, s := range sources {
		if strings.HasSuffix(s.ID, fmt.Sprintf("-%s", dataType)) {
			return s, nil
		}
	}
	return collada.Source{}, fmt.Errorf("model: source %q not found", dataType)
}
