package shader

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/light"
	"github.com/Carmen-Shannon/oxy-orrery/engine/model"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orrery/noise"
)

// registryEntry pairs a WGSL source snippet (embedded from a .wgsl asset file) with the
// WGSL type name used in generated @group/@binding declarations.
type registryEntry struct {
	// Source is the raw WGSL text injected by @oxy:include.
	Source string

	// Type is the WGSL type name emitted in @oxy:group declarations (e.g. "CameraUniform").
	// Empty for function libraries, which cannot back a binding.
	Type string

	// Requires lists includes that must precede this one.
	Requires []AnnotationArg
}

var (
	registryMu sync.RWMutex

	// includeRegistry maps include arguments to their source. Seeded with the engine's
	// GPU types and extended through RegisterInclude.
	includeRegistry = map[AnnotationArg]registryEntry{
		AnnotationArgCamera:         {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
		AnnotationArgLights:         {Source: light.GPULightsSource, Type: "LightsUniform"},
		annotationArgVertex:         {Source: model.GPUVertexSource, Type: "VertexInput"},
		AnnotationArgModelTransform: {Source: model.GPUModelTransformSource, Type: "ModelTransform"},
		AnnotationArgMaterialParams: {Source: material.GPUMaterialParamsSource, Type: "MaterialParams"},
		annotationArgNoise:          {Source: noise.GPUNoiseSource},
		annotationArgLighting: {
			Source:   light.GPULightingSource,
			Requires: []AnnotationArg{AnnotationArgLights, AnnotationArgMaterialParams},
		},
	}
)

// RegisterInclude adds a WGSL snippet that shaders can pull in with //@oxy:include <arg>.
// When typeName is non-empty the snippet defines that struct and it can also be used as the
// type of an //@oxy:group declaration.
//
// Parameters:
//   - arg: the include argument
//   - source: the WGSL text
//   - typeName: the struct name defined by source, or "" for a function library
//
// Returns:
//   - error: if arg is empty or already registered
func RegisterInclude(arg AnnotationArg, source, typeName string) error {
	if arg == "" {
		return fmt.Errorf("shader: include argument must not be empty")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := includeRegistry[arg]; exists {
		return fmt.Errorf("shader: include %q already registered", arg)
	}
	includeRegistry[arg] = registryEntry{Source: source, Type: typeName}
	return nil
}

// lookupInclude returns the registered entry for arg.
func lookupInclude(arg AnnotationArg) (registryEntry, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	entry, ok := includeRegistry[arg]
	return entry, ok
}
