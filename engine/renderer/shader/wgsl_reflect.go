package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// structRegex captures the name and body of a struct declaration.
	structRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// memberRegex captures the attributes, name and type of one struct member.
	memberRegex = regexp.MustCompile(`^((?:@\w+(?:\([^)]*\))?\s*)*)(\w+)\s*:\s*(.+)$`)

	// locationRegex captures N of @location(N).
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// entryRegex captures the stage attribute and name of an entry point function.
	entryRegex = regexp.MustCompile(`@(vertex|fragment)\s+fn\s+(\w+)`)

	// resourceRegex captures group, binding, address space, name and type of a resource, e.g.
	// "@group(0) @binding(0) var<uniform> camera: CameraUniform;".
	resourceRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// stageAttributes names the entry point attribute of each shader type.
var stageAttributes = map[ShaderType]string{
	ShaderTypeVertex:   "vertex",
	ShaderTypeFragment: "fragment",
}

// wgslMember is one member of a WGSL struct. location is -1 without @location.
type wgslMember struct {
	name     string
	typ      string
	location int
	builtin  bool
}

type wgslStruct struct {
	name    string
	members []wgslMember
}

// isVertexInput reports whether every member of s is a @location attribute. Vertex outputs
// carry @builtin(position) and are excluded.
func (s wgslStruct) isVertexInput() bool {
	for _, m := range s.members {
		if m.builtin || m.location < 0 {
			return false
		}
	}
	return len(s.members) > 0
}

// reflection is what a pre-processed WGSL stage exposes to pipeline creation.
type reflection struct {
	entryPoint    string
	vertexLayouts map[int][]wgpu.VertexBufferLayout
	groups        map[int]wgpu.BindGroupLayoutDescriptor
	varNames      map[int]map[int]string
}

// reflectWGSL extracts the entry point, the vertex buffer layouts (vertex stage only) and the
// bind group layouts of a pre-processed WGSL source. Resources are limited to uniform
// buffers, texture_2d<f32> and filtering samplers.
//
// Parameters:
//   - source: the pre-processed WGSL source
//   - stage: the stage the source is compiled for
//
// Returns:
//   - reflection: the reflected metadata
//   - error: if there is no entry point or a declaration cannot be mapped to a layout
func reflectWGSL(source string, stage ShaderType) (reflection, error) {
	source = stripLineComments(source)
	r := reflection{
		vertexLayouts: make(map[int][]wgpu.VertexBufferLayout),
		groups:        make(map[int]wgpu.BindGroupLayoutDescriptor),
		varNames:      make(map[int]map[int]string),
	}

	for _, m := range entryRegex.FindAllStringSubmatch(source, -1) {
		if m[1] == stageAttributes[stage] {
			r.entryPoint = m[2]
			break
		}
	}
	if r.entryPoint == "" {
		return r, fmt.Errorf("no @%s entry point", stageAttributes[stage])
	}

	structs := parseStructs(source)
	if stage == ShaderTypeVertex {
		for _, s := range structs {
			if !s.isVertexInput() {
				continue
			}
			vl, err := vertexBufferLayout(s)
			if err != nil {
				return r, err
			}
			r.vertexLayouts[len(r.vertexLayouts)] = []wgpu.VertexBufferLayout{vl}
		}
	}

	layouts := newLayoutResolver(structs)
	entries := make(map[int][]wgpu.BindGroupLayoutEntry)
	for _, m := range resourceRegex.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		entry, err := resourceEntry(uint32(binding), stage.Visibility(), strings.TrimSpace(m[3]), m[5], layouts)
		if err != nil {
			return r, fmt.Errorf("@group(%d) @binding(%d) %s: %w", group, binding, m[4], err)
		}
		entries[group] = append(entries[group], entry)
		if r.varNames[group] == nil {
			r.varNames[group] = make(map[int]string)
		}
		r.varNames[group][binding] = m[4]
	}
	for group, es := range entries {
		sort.Slice(es, func(i, j int) bool { return es[i].Binding < es[j].Binding })
		r.groups[group] = wgpu.BindGroupLayoutDescriptor{Entries: es}
	}
	return r, nil
}

// resourceEntry builds the layout entry of one resource declaration. Uniform buffers get
// MinBindingSize from the layout of their type.
func resourceEntry(binding uint32, visibility wgpu.ShaderStage, addressSpace, typ string, layouts *layoutResolver) (wgpu.BindGroupLayoutEntry, error) {
	entry := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}
	switch {
	case addressSpace == "uniform":
		l, err := layouts.layout(typ)
		if err != nil {
			return entry, err
		}
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		entry.Buffer.MinBindingSize = l.size
	case addressSpace != "":
		return entry, fmt.Errorf("unsupported address space %q", addressSpace)
	case typ == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case typ == "texture_2d<f32>":
		entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
		entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	default:
		return entry, fmt.Errorf("unsupported resource type %q", typ)
	}
	return entry, nil
}

// parseStructs returns every struct declaration of source in order.
func parseStructs(source string) []wgslStruct {
	var structs []wgslStruct
	for _, m := range structRegex.FindAllStringSubmatch(source, -1) {
		s := wgslStruct{name: m[1]}
		for _, decl := range splitMembers(m[2]) {
			mm := memberRegex.FindStringSubmatch(decl)
			if mm == nil {
				continue
			}
			member := wgslMember{
				name:     mm[2],
				typ:      strings.TrimSpace(mm[3]),
				location: -1,
				builtin:  strings.Contains(mm[1], "@builtin"),
			}
			if loc := locationRegex.FindStringSubmatch(mm[1]); loc != nil {
				member.location, _ = strconv.Atoi(loc[1])
			}
			s.members = append(s.members, member)
		}
		structs = append(structs, s)
	}
	return structs
}

// splitMembers splits a struct body at the commas outside angle brackets, so that
// array<PointLight, 2> stays whole. Empty pieces are dropped.
func splitMembers(body string) []string {
	var out []string
	depth, start := 0, 0
	flush := func(end int) {
		if s := strings.TrimSpace(body[start:end]); s != "" {
			out = append(out, s)
		}
		start = end + 1
	}
	for i, c := range body {
		switch c {
		case '<':
			depth++
		case '>':
			depth = max(depth-1, 0)
		case ',':
			if depth == 0 {
				flush(i)
			}
		}
	}
	flush(len(body))
	return out
}

// stripLineComments drops everything after // on each line.
func stripLineComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	for line := range strings.Lines(source) {
		if code, _, found := strings.Cut(line, "//"); found {
			sb.WriteString(code)
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(line)
	}
	return sb.String()
}
