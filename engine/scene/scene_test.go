package scene

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/model"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shading"
	"github.com/Carmen-Shannon/oxy-orrery/solar"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records what the scene asks of the GPU.
type fakeRenderer struct {
	mu sync.Mutex

	pipelines  map[string]pipeline.Pipeline
	meshes     []string
	bindGroups []string
	textures   map[string]common.TextureStagingData
	samplers   map[string]common.SamplerStagingData
	writes     []bind_group_provider.BufferWrite
	draws      []fakeDraw

	failBindGroup string
	failDraw      error
}

type fakeDraw struct {
	key       string
	mesh      string
	providers []string
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		pipelines: make(map[string]pipeline.Pipeline),
		textures:  make(map[string]common.TextureStagingData),
		samplers:  make(map[string]common.SamplerStagingData),
	}
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline {
	return f.pipelines[key]
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		f.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (f *fakeRenderer) Resize(int, int)                     {}
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meshes = append(f.meshes, provider.Label())
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor) error {
	if f.failBindGroup != "" && strings.Contains(provider.Label(), f.failBindGroup) {
		return errors.New("out of memory")
	}
	f.bindGroups = append(f.bindGroups, provider.Label())
	return nil
}

func (f *fakeRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, _ int, data common.TextureStagingData) error {
	f.textures[provider.Label()] = data
	return nil
}

func (f *fakeRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, _ int, data common.SamplerStagingData) error {
	f.samplers[provider.Label()] = data
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func (f *fakeRenderer) BeginFrame() error { return nil }

func (f *fakeRenderer) DrawCall(key string, mesh bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider) error {
	if f.failDraw != nil {
		return f.failDraw
	}
	d := fakeDraw{key: key, mesh: mesh.Label()}
	for _, g := range groups {
		d.providers = append(d.providers, g.Label())
	}
	f.draws = append(f.draws, d)
	return nil
}

func (f *fakeRenderer) EndFrame() {}
func (f *fakeRenderer) Present()  {}

// cheapGenerators replaces every mesh of the catalog with a small sphere.
func cheapGenerators() map[string]func() model.Mesh {
	out := make(map[string]func() model.Mesh)
	for name := range solar.MeshGenerators() {
		out[name] = func() model.Mesh { return model.NewSubdivisionSphere(0) }
	}
	return out
}

func newTestScene(t *testing.T, r *fakeRenderer, options ...SceneBuilderOption) *scene {
	t.Helper()
	opts := append([]SceneBuilderOption{
		WithTextureDir(t.TempDir()),
		WithLoadWorkers(2),
		WithStars(5, 7),
		withCatalog(cheapGenerators(), solar.Materials()),
	}, options...)
	return NewScene(r, opts...).(*scene)
}

func intPtr(v int) *int { return &v }

func groupDecl(group, binding int, kind shader.AnnotationArg) shader.Annotation {
	return shader.Annotation{
		Type:    shader.AnnotationTypeBindingGroup,
		Args:    []shader.AnnotationArg{"storage_uniform", "v", kind},
		Group:   intPtr(group),
		Binding: intPtr(binding),
	}
}

func TestClassifyShadingPrograms(t *testing.T) {
	for _, prog := range shading.Programs() {
		t.Run(prog.Key(), func(t *testing.T) {
			pb, err := classifyBindings(shading.NewPipeline(prog).Declarations())
			require.NoError(t, err)

			assert.Equal(t, shading.GroupCamera, pb.group(roleCamera))
			assert.Equal(t, shading.GroupFrame, pb.group(roleFrame))
			assert.Equal(t, shading.GroupDraw, pb.group(roleDraw))
			assert.Equal(t, shader.AnnotationArgModelTransform, pb.uniforms[roleDraw][0])

			if prog.Key() == material.ProgramPhong {
				assert.Equal(t, []groupRole{roleCamera, roleFrame, roleDraw, roleMaterial}, pb.roles)
				assert.True(t, pb.textured())
				assert.Equal(t, 0, pb.textureBinding)
				assert.Equal(t, 1, pb.samplerBinding)
			} else {
				assert.Len(t, pb.roles, 3)
				assert.False(t, pb.textured())
			}
		})
	}
}

func TestClassifyBindingsErrors(t *testing.T) {
	_, err := classifyBindings([]shader.Annotation{
		groupDecl(0, 0, shader.AnnotationArgCamera),
		groupDecl(0, 1, shader.AnnotationArgLights),
	})
	assert.ErrorContains(t, err, "mixes camera and frame")

	_, err = classifyBindings([]shader.Annotation{
		groupDecl(0, 0, shader.AnnotationArgCamera),
		groupDecl(2, 0, shader.AnnotationArgModelTransform),
	})
	assert.ErrorContains(t, err, "group 1 is missing")

	_, err = classifyBindings([]shader.Annotation{groupDecl(0, 0, "bone_info")})
	assert.ErrorContains(t, err, `"bone_info"`)

	_, err = classifyBindings([]shader.Annotation{
		groupDecl(0, 0, shader.AnnotationArgCamera),
		groupDecl(0, 0, shader.AnnotationArgLights),
	})
	assert.ErrorContains(t, err, "declared as")

	pb, err := classifyBindings([]shader.Annotation{
		groupDecl(0, 0, shader.AnnotationArgCamera),
		groupDecl(0, 0, shader.AnnotationArgCamera),
		{Type: shader.AnnotationTypeProvider, Args: []shader.AnnotationArg{shader.AnnotationArgMaterial, shader.AnnotationArgDiffuseTexture}, Group: intPtr(1), Binding: intPtr(0)},
	})
	require.Error(t, err, "a texture without a sampler is rejected")
	assert.Empty(t, pb.roles)
}

func TestUniformWrites(t *testing.T) {
	pb, err := classifyBindings(shading.NewPipeline(mustProgram(t, material.ProgramPhong)).Declarations())
	require.NoError(t, err)

	provider := bind_group_provider.NewBindGroupProvider("p")
	frame := shading.FrameInputs{Time: 2}

	cam := pb.uniformWrites(roleCamera, provider, frame, shading.DrawInputs{})
	require.Len(t, cam, 1)
	assert.Len(t, cam[0].Data, 144)

	lights := pb.uniformWrites(roleFrame, provider, frame, shading.DrawInputs{})
	require.Len(t, lights, 1)
	assert.Len(t, lights[0].Data, 112)

	draw := pb.uniformWrites(roleDraw, provider, frame, shading.DrawInputs{})
	require.Len(t, draw, 2)
	assert.Equal(t, 0, draw[0].Binding)
	assert.Len(t, draw[0].Data, 144)
	assert.Equal(t, 1, draw[1].Binding)
	assert.Len(t, draw[1].Data, 48)

	sunPB, err := classifyBindings(shading.NewPipeline(mustProgram(t, material.ProgramSun)).Declarations())
	require.NoError(t, err)
	globals := sunPB.uniformWrites(roleFrame, provider, frame, shading.DrawInputs{})
	require.Len(t, globals, 1)
	assert.Equal(t, 1, globals[0].Binding)
	assert.Len(t, globals[0].Data, 16)
}

func mustProgram(t *testing.T, key string) shading.Program {
	t.Helper()
	p, ok := shading.Lookup(key)
	require.True(t, ok)
	return p
}

func TestLoadAssets(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.Set(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	f, err := os.Create(filepath.Join(dir, solar.TextureEarth))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	got := loadAssets(3, cheapGenerators(), solar.Materials(), dir, 4)

	assert.Len(t, got.meshes, len(solar.MeshGenerators()))
	assert.Positive(t, got.meshes[solar.MeshStar].IndexCount())
	assert.Equal(t, []string{solar.TextureBricks, solar.TextureEarth, solar.TextureStarFace, solar.TextureStars}, textureFiles(solar.Materials()))

	earth := got.textures[solar.TextureEarth]
	assert.Equal(t, uint32(4), earth.Width, "down-scaled to the max size")
	assert.Equal(t, uint32(2), earth.Height)

	assert.Equal(t, common.WhiteTexture(), got.textures[solar.TextureBricks], "missing files fall back to white")
}

func TestInit(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r)

	require.NoError(t, s.Init())
	require.NoError(t, s.Init(), "Init is idempotent")

	assert.Len(t, r.pipelines, len(shading.Programs()))
	assert.Len(t, r.meshes, len(solar.MeshGenerators()))
	assert.Len(t, s.frameProviders, len(shading.Programs()))

	phong := 0
	for _, m := range solar.Materials() {
		if m.Program() == material.ProgramPhong {
			phong++
		}
	}
	assert.Len(t, s.materialProviders, phong)

	assert.Equal(t, common.FilterNearest.Sampler(), r.samplers[solar.MaterialBricks4+" material"])
	assert.Equal(t, common.FilterLinear.Sampler(), r.samplers[solar.MaterialPlastic+" material"])
	assert.Equal(t, common.WhiteTexture(), r.textures[solar.MaterialPlastic+" material"])
}

func TestInitWrapsBindGroupErrors(t *testing.T) {
	r := newFakeRenderer()
	r.failBindGroup = "frame"
	s := newTestScene(t, r)

	err := s.Init()
	require.Error(t, err)
	assert.ErrorContains(t, err, "frame bind group")
	assert.ErrorContains(t, err, "out of memory")
}

func TestDrawCallsBeforeInit(t *testing.T) {
	s := newTestScene(t, newFakeRenderer())
	assert.Error(t, s.DrawCalls())
}

func TestDrawCalls(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r)
	require.NoError(t, s.Init())

	require.NoError(t, s.DrawCalls())
	require.Len(t, r.draws, 1+len(solar.Bodies))

	sun := r.draws[0]
	assert.Equal(t, material.ProgramSun, sun.key)
	assert.Equal(t, solar.MeshBall6+" mesh", sun.mesh)
	require.Len(t, sun.providers, 3)
	assert.Equal(t, s.cam.BindGroupProvider().Label(), sun.providers[0])
	assert.Equal(t, material.ProgramSun+" frame", sun.providers[1])

	rock := r.draws[1]
	assert.Equal(t, material.ProgramPhong, rock.key)
	require.Len(t, rock.providers, 4)
	assert.Equal(t, solar.MaterialJaggedRock+" material", rock.providers[3])

	// Every draw of the frame has its own slot.
	slots := map[string]bool{}
	for _, d := range r.draws {
		slots[d.providers[shading.GroupDraw]] = true
	}
	assert.Len(t, slots, len(r.draws))

	// The next frame reuses the slots instead of creating new ones.
	bindGroups := len(r.bindGroups)
	phongSlots := s.slots.Len(material.ProgramPhong)
	require.NoError(t, s.DrawCalls())
	assert.Equal(t, bindGroups, len(r.bindGroups))
	assert.Equal(t, phongSlots, s.slots.Len(material.ProgramPhong))
}

func TestDrawCallsWithLightsDrawsStars(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r)
	require.NoError(t, s.Init())

	s.HandleKey(common.KeyEvent{Key: common.KeyL})
	require.True(t, s.State().LightsOn)

	require.NoError(t, s.DrawCalls())
	assert.Len(t, r.draws, 1+len(solar.Bodies)+5)
	last := r.draws[len(r.draws)-1]
	assert.Equal(t, solar.MeshStar+" mesh", last.mesh)
	assert.Equal(t, solar.MaterialStars+" material", last.providers[3])
}

func TestDrawCallsJoinsErrors(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r)
	require.NoError(t, s.Init())

	cause := errors.New("lost device")
	r.failDraw = cause
	err := s.DrawCalls()
	assert.ErrorIs(t, err, cause)
}

func TestHandleKeyUpdatesTitle(t *testing.T) {
	var titles []string
	s := newTestScene(t, newFakeRenderer(), WithTitleCallback(func(title string) {
		titles = append(titles, title)
	}))

	assert.Equal(t, TitlePrefix+"0", s.Title())

	s.HandleKey(common.KeyEvent{Key: common.KeyH})
	s.HandleKey(common.KeyEvent{Key: common.KeyH})
	s.HandleKey(common.KeyEvent{Key: common.KeyH, Action: common.KeyReleased})
	s.HandleKey(common.KeyEvent{Key: common.KeyG})
	s.HandleKey(common.KeyEvent{Key: common.KeyE})

	assert.Equal(t, []string{TitlePrefix + "1", TitlePrefix + "2", TitlePrefix + "1"}, titles)
	assert.True(t, s.State().Camera.Enabled)

	s.HandleKey(common.KeyEvent{Key: common.KeyE, Mods: common.ModShift})
	assert.False(t, s.State().Camera.Enabled)

	// Toggling the teleporter keeps the selection, so the title stays as it was.
	assert.Len(t, titles, 3)
	assert.Equal(t, TitlePrefix+"1", s.Title())
}

func TestUpdateAdvancesClock(t *testing.T) {
	s := newTestScene(t, newFakeRenderer(), WithTimeScale(2))
	s.Update(0.5)
	s.Update(0.25)
	assert.InDelta(t, 1.5, s.Time(), 1e-6)
}

func TestUpdateSteersCamera(t *testing.T) {
	s := newTestScene(t, newFakeRenderer())
	start := s.cam.ViewMatrix()

	s.HandleKey(common.KeyEvent{Key: common.KeyH})
	s.Update(0.01)
	assert.Equal(t, start, s.cam.ViewMatrix(), "the selector is off until enabled")

	s.HandleKey(common.KeyEvent{Key: common.KeyE})
	s.Update(0.01)
	target := solar.Compose(0.02).CameraCandidates()[1]
	want := common.Mix4(start, target, camera.TeleportRate*10)
	for i := range want {
		assert.InDelta(t, want[i], s.cam.ViewMatrix()[i], 1e-4)
	}
}

func TestUpdateMovesCamera(t *testing.T) {
	s := newTestScene(t, newFakeRenderer())
	start := s.cam.ViewMatrix()

	s.HandleKey(common.KeyEvent{Key: common.KeyW})
	assert.False(t, s.State().LightsOn)
	s.Update(0.5)
	moved := s.cam.ViewMatrix()
	assert.NotEqual(t, start, moved)

	s.HandleKey(common.KeyEvent{Key: common.KeyW, Action: common.KeyReleased})
	s.Update(0.5)
	assert.Equal(t, moved, s.cam.ViewMatrix())
}

func TestNewScenePanicsWithoutRenderer(t *testing.T) {
	assert.PanicsWithValue(t, "scene: renderer is nil", func() { NewScene(nil) })
}
