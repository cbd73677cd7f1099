// Package scene binds the solar system to the renderer.
//
// The scene owns the GPU resources of the orrery: one mesh provider per generated mesh, one
// material provider per textured material, one frame provider per pipeline, the camera provider
// shared by every pipeline and a slot pool of per-draw providers. Each frame it composes the
// system with the solar package, asks the shading programs for the per-draw uniforms and issues
// one draw call per DrawCommand.
package scene

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/model"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/shading"
	"github.com/Carmen-Shannon/oxy-orrery/solar"
)

// TitlePrefix starts the window title the scene reports for the camera selection.
const TitlePrefix = "Selected camera location: "

// Scene is the animated solar system bound to a Renderer.
// Update, HandleKey and DrawCalls may be called from different goroutines.
type Scene interface {
	// Init registers the shading pipelines, loads meshes and textures on the worker pool and
	// creates every GPU resource the scene draws with. It must be called once before DrawCalls.
	//
	// Returns:
	//   - error: if a pipeline, buffer or bind group cannot be created
	Init() error

	// Update advances the scene clock and moves the camera.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the previous update in seconds
	Update(deltaTime float32)

	// HandleKey routes a key event to the free-fly controls or the interaction state.
	//
	// Parameters:
	//   - ev: the key event
	HandleKey(ev common.KeyEvent)

	// DrawCalls composes the current frame, writes its uniforms and records one draw per
	// command. Draws that fail are skipped and reported together.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: the joined errors of the skipped draws
	DrawCalls() error

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Time returns the scene clock in seconds.
	//
	// Returns:
	//   - float32: the elapsed scene time
	Time() float32

	// State returns the current interaction state.
	//
	// Returns:
	//   - solar.State: the lights and camera selector state
	State() solar.State

	// Title returns the window title describing the camera selection.
	//
	// Returns:
	//   - string: the title
	Title() string

	// Release frees every GPU resource the scene created.
	Release()
}

// scene implements Scene.
type scene struct {
	mu sync.Mutex

	r   renderer.Renderer
	cam camera.Camera
	mov camera.Movement

	time           float32
	lastDelta      float32
	timeScale      float32
	state          solar.State
	candidateCount int

	onTitle func(title string)

	starCount      int
	starSeed       uint64
	stars          []common.Mat4
	textureDir     string
	maxTextureSize int
	workers        int

	materials map[string]material.Material
	generate  map[string]func() model.Mesh

	bindings          map[string]pipelineBindings
	models            map[string]model.Model
	frameProviders    map[string]bind_group_provider.BindGroupProvider
	materialProviders map[string]bind_group_provider.BindGroupProvider
	slots             *bind_group_provider.SlotPool

	initialized bool
}

var _ Scene = &scene{}

// NewScene creates a solar-system scene drawn by r. GPU resources are created by Init.
// Panics if r is nil.
//
// Parameters:
//   - r: the renderer to draw with
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if r == nil {
		panic("scene: renderer is nil")
	}
	s := &scene{
		r:                 r,
		timeScale:         1,
		starCount:         solar.StarCount,
		starSeed:          1,
		textureDir:        "assets",
		workers:           runtime.NumCPU(),
		materials:         solar.Materials(),
		generate:          solar.MeshGenerators(),
		bindings:          make(map[string]pipelineBindings),
		models:            make(map[string]model.Model),
		frameProviders:    make(map[string]bind_group_provider.BindGroupProvider),
		materialProviders: make(map[string]bind_group_provider.BindGroupProvider),
		slots:             bind_group_provider.NewSlotPool(shading.GroupDraw),
	}
	for _, option := range options {
		option(s)
	}
	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	if s.mov == nil {
		s.mov = camera.NewMovement()
	}
	s.stars = solar.NewStarField(rand.New(rand.NewPCG(s.starSeed, s.starSeed^0x9e3779b97f4a7c15)), s.starCount)
	s.candidateCount = len(solar.Compose(0).CameraCandidates())
	return s
}

func (s *scene) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}

	pipelines := make([]pipeline.Pipeline, 0, len(shading.Programs()))
	for _, prog := range shading.Programs() {
		p := shading.NewPipeline(prog)
		pb, err := classifyBindings(p.Declarations())
		if err != nil {
			return fmt.Errorf("scene: pipeline %q: %w", prog.Key(), err)
		}
		s.bindings[prog.Key()] = pb
		pipelines = append(pipelines, p)
	}
	if err := s.r.RegisterPipelines(pipelines...); err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	if err := s.initCamera(pipelines[0]); err != nil {
		return err
	}
	for _, p := range pipelines {
		if err := s.initFrameProvider(p); err != nil {
			return err
		}
	}

	loaded := loadAssets(s.workers, s.generate, s.materials, s.textureDir, s.maxTextureSize)
	if err := s.initModels(loaded.meshes); err != nil {
		return err
	}
	if err := s.initMaterials(loaded.textures); err != nil {
		return err
	}

	s.initialized = true
	log.Printf("[Scene] initialized %d pipelines, %d meshes, %d material groups, %d stars",
		len(pipelines), len(s.models), len(s.materialProviders), len(s.stars))
	return nil
}

// initCamera creates the camera bind group from the camera group of p. Every pipeline
// declares an identical camera group, so one provider serves them all.
func (s *scene) initCamera(p pipeline.Pipeline) error {
	pb := s.bindings[p.PipelineKey()]
	group := pb.group(roleCamera)
	if group < 0 {
		return fmt.Errorf("scene: pipeline %q has no camera group", p.PipelineKey())
	}
	if err := s.r.InitBindGroup(s.cam.BindGroupProvider(), p.BindGroupLayoutDescriptor(group)); err != nil {
		return fmt.Errorf("scene: camera bind group: %w", err)
	}
	return nil
}

func (s *scene) initFrameProvider(p pipeline.Pipeline) error {
	pb := s.bindings[p.PipelineKey()]
	group := pb.group(roleFrame)
	if group < 0 {
		return nil
	}
	provider := bind_group_provider.NewBindGroupProvider(p.PipelineKey()+" frame", bind_group_provider.WithGroup(group))
	if err := s.r.InitBindGroup(provider, p.BindGroupLayoutDescriptor(group)); err != nil {
		return fmt.Errorf("scene: frame bind group for %q: %w", p.PipelineKey(), err)
	}
	s.frameProviders[p.PipelineKey()] = provider
	return nil
}

func (s *scene) initModels(meshes map[string]model.Mesh) error {
	for name, mesh := range meshes {
		provider := bind_group_provider.NewBindGroupProvider(name + " mesh")
		if err := s.r.InitMeshBuffers(provider, mesh.VertexData(), mesh.IndexData(), mesh.IndexCount()); err != nil {
			return fmt.Errorf("scene: mesh %q: %w", name, err)
		}
		s.models[name] = model.NewModel(
			model.WithName(name),
			model.WithMesh(mesh),
			model.WithMeshProvider(provider),
		)
	}
	return nil
}

// initMaterials creates a material bind group for every material drawn by a pipeline that
// samples a texture. Untextured materials bind the white texture.
func (s *scene) initMaterials(textures map[string]common.TextureStagingData) error {
	for name, m := range s.materials {
		prog, err := shading.ProgramFor(m)
		if err != nil {
			return fmt.Errorf("scene: %w", err)
		}
		pb := s.bindings[prog.Key()]
		if !pb.textured() {
			continue
		}
		group := pb.group(roleMaterial)

		tex := common.WhiteTexture()
		sampler := common.FilterLinear.Sampler()
		if m.Textured() {
			if t, ok := textures[m.Texture()]; ok {
				tex = t
			}
			sampler = m.Filter().Sampler()
		}

		provider := bind_group_provider.NewBindGroupProvider(name+" material", bind_group_provider.WithGroup(group))
		if err := s.r.InitTextureView(provider, pb.textureBinding, tex); err != nil {
			return fmt.Errorf("scene: material %q texture: %w", name, err)
		}
		if err := s.r.InitSampler(provider, pb.samplerBinding, sampler); err != nil {
			return fmt.Errorf("scene: material %q sampler: %w", name, err)
		}
		layout := s.r.Pipeline(prog.Key()).BindGroupLayoutDescriptor(group)
		if err := s.r.InitBindGroup(provider, layout); err != nil {
			return fmt.Errorf("scene: material %q bind group: %w", name, err)
		}
		s.materialProviders[name] = provider
	}
	return nil
}

func (s *scene) Update(deltaTime float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastDelta = deltaTime * s.timeScale
	s.time += s.lastDelta

	candidates := solar.Compose(s.time).CameraCandidates()
	s.candidateCount = len(candidates)

	view := s.cam.ViewMatrix()
	if next, steered := s.state.Camera.Step(view, candidates, deltaTime*1000); steered {
		s.cam.SetViewMatrix(next)
		return
	}
	if s.mov.Active() {
		s.cam.SetViewMatrix(s.mov.Apply(view, deltaTime))
	}
}

func (s *scene) HandleKey(ev common.KeyEvent) {
	if s.mov.HandleKey(ev) || ev.Action != common.KeyPressed {
		return
	}
	action := solar.ActionForKey(ev.Key, ev.Shift())
	if action == solar.ActionNone {
		return
	}

	s.mu.Lock()
	before := s.state.Camera.Selection
	s.state = s.state.Apply(action, s.candidateCount)
	changed := s.state.Camera.Selection != before
	title := s.titleLocked()
	onTitle := s.onTitle
	s.mu.Unlock()

	log.Printf("[Scene] %s", action)
	if changed && onTitle != nil {
		onTitle(title)
	}
}

// pendingDraw is a draw whose providers are ready and whose uniforms are queued.
type pendingDraw struct {
	key       string
	mesh      bind_group_provider.BindGroupProvider
	providers []bind_group_provider.BindGroupProvider
}

func (s *scene) DrawCalls() error {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return errors.New("scene: DrawCalls before Init")
	}
	t, dt, state := s.time, s.lastDelta, s.state
	s.mu.Unlock()

	f := solar.Compose(t)
	frame := shading.FrameInputs{
		Projection:     s.cam.ProjectionMatrix(),
		View:           s.cam.ViewMatrix(),
		CameraPosition: s.cam.Position(),
		Time:           t,
		Delta:          dt,
		Lights:         f.Lights(),
	}
	cmds := solar.Plan(f, state, s.stars, s.materials)

	s.slots.Reset()
	writes := s.frameWrites(frame)

	var errs []error
	draws := make([]pendingDraw, 0, len(cmds))
	for _, cmd := range cmds {
		d, w, err := s.prepareDraw(cmd, frame)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		writes = append(writes, w...)
		draws = append(draws, d)
	}

	s.r.WriteBuffers(writes)
	for _, d := range draws {
		if err := s.r.DrawCall(d.key, d.mesh, d.providers); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// frameWrites builds the camera write and the frame writes of every pipeline.
func (s *scene) frameWrites(frame shading.FrameInputs) []bind_group_provider.BufferWrite {
	var writes []bind_group_provider.BufferWrite
	cameraWritten := false
	for key, pb := range s.bindings {
		if !cameraWritten {
			writes = append(writes, pb.uniformWrites(roleCamera, s.cam.BindGroupProvider(), frame, shading.DrawInputs{})...)
			cameraWritten = true
		}
		if provider, ok := s.frameProviders[key]; ok {
			writes = append(writes, pb.uniformWrites(roleFrame, provider, frame, shading.DrawInputs{})...)
		}
	}
	return writes
}

// prepareDraw resolves the program, mesh and providers of cmd and builds its draw writes.
func (s *scene) prepareDraw(cmd solar.DrawCommand, frame shading.FrameInputs) (pendingDraw, []bind_group_provider.BufferWrite, error) {
	prog, err := shading.ProgramFor(cmd.Material)
	if err != nil {
		return pendingDraw{}, nil, err
	}
	key := prog.Key()
	pb := s.bindings[key]

	mdl, ok := s.models[cmd.Mesh]
	if !ok {
		return pendingDraw{}, nil, fmt.Errorf("scene: unknown mesh %q", cmd.Mesh)
	}

	slot, fresh := s.slots.Acquire(key)
	if fresh {
		p := s.r.Pipeline(key)
		if p == nil {
			s.slots.Discard(key)
			return pendingDraw{}, nil, fmt.Errorf("scene: pipeline %q is not registered", key)
		}
		if err := s.r.InitBindGroup(slot, p.BindGroupLayoutDescriptor(pb.group(roleDraw))); err != nil {
			s.slots.Discard(key)
			return pendingDraw{}, nil, fmt.Errorf("scene: draw slot for %q: %w", key, err)
		}
	}

	providers := make([]bind_group_provider.BindGroupProvider, len(pb.roles))
	for group, role := range pb.roles {
		switch role {
		case roleCamera:
			providers[group] = s.cam.BindGroupProvider()
		case roleFrame:
			providers[group] = s.frameProviders[key]
		case roleDraw:
			providers[group] = slot
		case roleMaterial:
			mp, ok := s.materialProviders[cmd.Material.Name()]
			if !ok {
				return pendingDraw{}, nil, fmt.Errorf("scene: material %q has no texture group", cmd.Material.Name())
			}
			providers[group] = mp
		}
	}

	inputs := prog.Setup(frame, cmd.Model, cmd.Material)
	writes := pb.uniformWrites(roleDraw, slot, frame, inputs)
	return pendingDraw{key: key, mesh: mdl.MeshProvider(), providers: providers}, writes, nil
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Time() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}

func (s *scene) State() solar.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *scene) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.titleLocked()
}

func (s *scene) titleLocked() string {
	return fmt.Sprintf("%s%d", TitlePrefix, s.state.Camera.Selection)
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots.Release()
	for _, p := range s.frameProviders {
		p.Release()
	}
	for _, p := range s.materialProviders {
		p.Release()
	}
	for _, m := range s.models {
		if p := m.MeshProvider(); p != nil {
			p.Release()
		}
	}
	s.cam.BindGroupProvider().Release()
	clear(s.frameProviders)
	clear(s.materialProviders)
	clear(s.models)
	s.initialized = false
}
