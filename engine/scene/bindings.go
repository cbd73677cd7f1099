package scene

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shading"
)

// groupRole identifies which provider the scene binds to a @group index.
type groupRole int

const (
	roleCamera groupRole = iota
	roleFrame
	roleDraw
	roleMaterial
)

func (r groupRole) String() string {
	switch r {
	case roleCamera:
		return "camera"
	case roleFrame:
		return "frame"
	case roleDraw:
		return "draw"
	case roleMaterial:
		return "material"
	default:
		return fmt.Sprintf("groupRole(%d)", int(r))
	}
}

// typeRoles maps every uniform struct the scene knows how to fill to the group role it belongs to.
var typeRoles = map[shader.AnnotationArg]groupRole{
	shader.AnnotationArgCamera:         roleCamera,
	shader.AnnotationArgLights:         roleFrame,
	shading.IncludeGlobals:             roleFrame,
	shader.AnnotationArgModelTransform: roleDraw,
	shader.AnnotationArgMaterialParams: roleDraw,
}

// pipelineBindings is the scene's view of one pipeline's bind groups, derived from its
// @oxy declarations.
type pipelineBindings struct {
	// roles holds the role of every group, indexed by group.
	roles []groupRole

	// uniforms maps role to binding to the struct type written there.
	uniforms map[groupRole]map[int]shader.AnnotationArg

	// textureBinding and samplerBinding locate the diffuse texture in the material group,
	// or are -1 when the pipeline samples no texture.
	textureBinding int
	samplerBinding int
}

// classifyBindings sorts a pipeline's declarations into camera, frame, draw and material groups.
// Declarations repeated across the vertex and fragment stages must agree. Every group from 0 to
// the highest declared one must be present and hold a single role.
//
// Parameters:
//   - decls: the declarations of both stages
//
// Returns:
//   - pipelineBindings: the classified groups
//   - error: if a declaration has an unknown type or a group mixes roles
func classifyBindings(decls []shader.Annotation) (pipelineBindings, error) {
	pb := pipelineBindings{
		uniforms:       make(map[groupRole]map[int]shader.AnnotationArg),
		textureBinding: -1,
		samplerBinding: -1,
	}
	groupRoles := make(map[int]groupRole)
	seen := make(map[[2]int]shader.AnnotationArg)

	assign := func(group int, role groupRole, line int) error {
		if prev, ok := groupRoles[group]; ok && prev != role {
			return fmt.Errorf("line %d: group %d mixes %s and %s bindings", line, group, prev, role)
		}
		groupRoles[group] = role
		return nil
	}

	for _, d := range decls {
		if d.Group == nil || d.Binding == nil {
			continue
		}
		g, b := *d.Group, *d.Binding

		var kind shader.AnnotationArg
		var role groupRole
		switch d.Type {
		case shader.AnnotationTypeBindingGroup:
			kind = d.Args[2]
			r, ok := typeRoles[kind]
			if !ok {
				return pipelineBindings{}, fmt.Errorf("line %d: no scene data for type %q", d.Line, kind)
			}
			role = r
		case shader.AnnotationTypeProvider:
			if d.Args[0] != shader.AnnotationArgMaterial || len(d.Args) < 2 {
				return pipelineBindings{}, fmt.Errorf("line %d: unsupported provider %q", d.Line, d.Args[0])
			}
			kind = d.Args[1]
			role = roleMaterial
		default:
			continue
		}

		key := [2]int{g, b}
		if prev, ok := seen[key]; ok {
			if prev != kind {
				return pipelineBindings{}, fmt.Errorf("line %d: group %d binding %d declared as %q and %q", d.Line, g, b, prev, kind)
			}
			continue
		}
		seen[key] = kind

		if err := assign(g, role, d.Line); err != nil {
			return pipelineBindings{}, err
		}

		switch role {
		case roleMaterial:
			switch kind {
			case shader.AnnotationArgDiffuseTexture:
				pb.textureBinding = b
			case shader.AnnotationArgDiffuseSampler:
				pb.samplerBinding = b
			}
		default:
			if pb.uniforms[role] == nil {
				pb.uniforms[role] = make(map[int]shader.AnnotationArg)
			}
			pb.uniforms[role][b] = kind
		}
	}

	groups := make([]int, 0, len(groupRoles))
	for g := range groupRoles {
		groups = append(groups, g)
	}
	sort.Ints(groups)
	for i, g := range groups {
		if g != i {
			return pipelineBindings{}, fmt.Errorf("group %d is declared but group %d is missing", g, i)
		}
		pb.roles = append(pb.roles, groupRoles[g])
	}
	if (pb.textureBinding < 0) != (pb.samplerBinding < 0) {
		return pipelineBindings{}, fmt.Errorf("material group needs both a texture and a sampler")
	}
	return pb, nil
}

// group returns the index of the first group with role, or -1.
func (pb pipelineBindings) group(role groupRole) int {
	for i, r := range pb.roles {
		if r == role {
			return i
		}
	}
	return -1
}

// textured reports whether the pipeline samples a material texture.
func (pb pipelineBindings) textured() bool {
	return pb.textureBinding >= 0
}

// uniformWrites builds the buffer writes for every uniform of role. Types the frame or draw
// inputs cannot fill are skipped.
//
// Parameters:
//   - role: the group role to fill
//   - provider: the provider bound to that group
//   - frame: the frame inputs
//   - draw: the draw inputs, ignored for camera and frame groups
//
// Returns:
//   - []bind_group_provider.BufferWrite: the writes in binding order
func (pb pipelineBindings) uniformWrites(role groupRole, provider bind_group_provider.BindGroupProvider, frame shading.FrameInputs, draw shading.DrawInputs) []bind_group_provider.BufferWrite {
	bindings := make([]int, 0, len(pb.uniforms[role]))
	for b := range pb.uniforms[role] {
		bindings = append(bindings, b)
	}
	sort.Ints(bindings)

	writes := make([]bind_group_provider.BufferWrite, 0, len(bindings))
	for _, b := range bindings {
		var data []byte
		switch pb.uniforms[role][b] {
		case shader.AnnotationArgCamera:
			u := frame.CameraUniform()
			data = u.Marshal()
		case shader.AnnotationArgLights:
			u := frame.LightsUniform()
			data = u.Marshal()
		case shading.IncludeGlobals:
			u := frame.Globals()
			data = u.Marshal()
		case shader.AnnotationArgModelTransform:
			data = draw.Transform.Marshal()
		case shader.AnnotationArgMaterialParams:
			data = draw.Params.Marshal()
		default:
			continue
		}
		writes = append(writes, bind_group_provider.BufferWrite{Provider: provider, Binding: b, Data: data})
	}
	return writes
}
