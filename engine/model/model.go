package model

import (
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name         string
	mesh         Mesh
	meshProvider bind_group_provider.BindGroupProvider
}

// Model defines the interface for a named, GPU-ready mesh.
// A Model pairs the CPU-side Mesh with the BindGroupProvider that owns its vertex and
// index buffers once the scene has uploaded them.
type Model interface {
	// Name retrieves the model identifier (e.g. "ball_4").
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the CPU-side geometry of this model.
	//
	// Returns:
	//   - Mesh: the mesh
	Mesh() Mesh

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	// Returns nil until the mesh has been uploaded.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider assigns the BindGroupProvider holding GPU mesh resources.
	//
	// Parameters:
	//   - provider: the provider owning the vertex and index buffers
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// VertexData returns the packed vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the packed index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() Mesh {
	return m.mesh
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) VertexData() []byte {
	return m.mesh.VertexData()
}

func (m *model) IndexData() []byte {
	return m.mesh.IndexData()
}

func (m *model) IndexCount() int {
	return m.mesh.IndexCount()
}
