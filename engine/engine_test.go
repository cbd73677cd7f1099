package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/camera"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-orrery/engine/scene"
	"github.com/Carmen-Shannon/oxy-orrery/solar"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callLog records calls in order across fakes.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *callLog) add(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func (c *callLog) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type fakeRenderer struct {
	log      *callLog
	beginErr error
	sizes    [][2]int
}

var _ renderer.Renderer = &fakeRenderer{}

func (f *fakeRenderer) Pipeline(string) pipeline.Pipeline            { return nil }
func (f *fakeRenderer) RegisterPipelines(...pipeline.Pipeline) error { return nil }
func (f *fakeRenderer) Resize(width, height int)                     { f.sizes = append(f.sizes, [2]int{width, height}) }
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode)          {}
func (f *fakeRenderer) InitMeshBuffers(bind_group_provider.BindGroupProvider, []byte, []byte, int) error {
	return nil
}
func (f *fakeRenderer) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor) error {
	return nil
}
func (f *fakeRenderer) InitTextureView(bind_group_provider.BindGroupProvider, int, common.TextureStagingData) error {
	return nil
}
func (f *fakeRenderer) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}
func (f *fakeRenderer) WriteBuffers([]bind_group_provider.BufferWrite) {}
func (f *fakeRenderer) BeginFrame() error {
	f.log.add("begin")
	return f.beginErr
}
func (f *fakeRenderer) DrawCall(string, bind_group_provider.BindGroupProvider, []bind_group_provider.BindGroupProvider) error {
	return nil
}
func (f *fakeRenderer) EndFrame() { f.log.add("end") }
func (f *fakeRenderer) Present()  { f.log.add("present") }

type fakeScene struct {
	name    string
	log     *callLog
	r       renderer.Renderer
	cam     camera.Camera
	drawErr error
	updates atomic.Int32
	keys    []common.KeyEvent
}

var _ scene.Scene = &fakeScene{}

func (s *fakeScene) Init() error                  { return nil }
func (s *fakeScene) Update(float32)               { s.updates.Add(1) }
func (s *fakeScene) HandleKey(ev common.KeyEvent) { s.keys = append(s.keys, ev) }
func (s *fakeScene) DrawCalls() error {
	s.log.add("draw " + s.name)
	return s.drawErr
}
func (s *fakeScene) Camera() camera.Camera       { return s.cam }
func (s *fakeScene) Renderer() renderer.Renderer { return s.r }
func (s *fakeScene) Time() float32               { return 0 }
func (s *fakeScene) State() solar.State          { return solar.State{} }
func (s *fakeScene) Title() string               { return "" }
func (s *fakeScene) Release()                    {}

func newFakes() (*callLog, *fakeRenderer) {
	l := &callLog{}
	return l, &fakeRenderer{log: l}
}

func newFakeScene(name string, l *callLog, r renderer.Renderer) *fakeScene {
	return &fakeScene{name: name, log: l, r: r, cam: camera.NewCamera()}
}

func TestRenderFrameOrdersScenes(t *testing.T) {
	l, r := newFakes()
	e := NewEngine(
		WithScene(2, newFakeScene("overlay", l, r)),
		WithScene(1, newFakeScene("orrery", l, r)),
	).(*engine)

	e.renderFrame()
	assert.Equal(t, []string{"begin", "draw orrery", "draw overlay", "end", "present"}, l.list())
}

func TestRenderFrameSkipsWhenBeginFails(t *testing.T) {
	l, r := newFakes()
	r.beginErr = errors.New("surface lost")
	e := NewEngine(WithScene(0, newFakeScene("orrery", l, r))).(*engine)

	e.renderFrame()
	assert.Equal(t, []string{"begin"}, l.list())
	assert.Equal(t, "surface lost", e.lastRenderErr)
}

func TestRenderFrameKeepsGoingOnDrawErrors(t *testing.T) {
	l, r := newFakes()
	broken := newFakeScene("broken", l, r)
	broken.drawErr = errors.New("unknown mesh")
	e := NewEngine(WithScene(0, broken), WithScene(1, newFakeScene("ok", l, r))).(*engine)

	e.renderFrame()
	assert.Equal(t, []string{"begin", "draw broken", "draw ok", "end", "present"}, l.list())
	assert.Equal(t, "unknown mesh", e.lastRenderErr)

	broken.drawErr = nil
	e.renderFrame()
	assert.Empty(t, e.lastRenderErr)
}

func TestRenderFrameWithoutScenes(t *testing.T) {
	e := NewEngine().(*engine)
	assert.NotPanics(t, e.renderFrame)
}

func TestHandleResize(t *testing.T) {
	l, r := newFakes()
	s := newFakeScene("orrery", l, r)
	e := NewEngine(WithScene(0, s)).(*engine)

	e.handleResize(0, 600)
	e.handleResize(1200, 600)

	assert.Equal(t, [][2]int{{1200, 600}}, r.sizes)
	assert.InDelta(t, 2, s.cam.Aspect(), 1e-6)
}

func TestHandleKeyForwardsToScenes(t *testing.T) {
	l, r := newFakes()
	a, b := newFakeScene("a", l, r), newFakeScene("b", l, r)
	e := NewEngine(WithScene(0, a), WithScene(1, b)).(*engine)

	ev := common.KeyEvent{Key: common.KeyL}
	e.handleKey(ev)
	assert.Equal(t, []common.KeyEvent{ev}, a.keys)
	assert.Equal(t, []common.KeyEvent{ev}, b.keys)
}

func TestScenesRegistry(t *testing.T) {
	l, r := newFakes()
	e := NewEngine()
	s := newFakeScene("orrery", l, r)

	e.AddScene(3, s)
	assert.Equal(t, s, e.Scene(3))
	assert.Len(t, e.Scenes(), 1)

	e.RemoveScene(3)
	assert.Nil(t, e.Scene(3))
	assert.Empty(t, e.Scenes())
}

func TestRateOptions(t *testing.T) {
	e := NewEngine(WithTickRate(0), WithRenderFrameLimit(50)).(*engine)
	assert.Equal(t, time.Second/60, e.engineTickRate)
	assert.Equal(t, 20*time.Millisecond, e.renderFrameLimit)

	e.SetTickRate(100)
	assert.Equal(t, 10*time.Millisecond, e.engineTickRate)
	e.SetRenderFrameLimit(-1)
	assert.Zero(t, e.renderFrameLimit)
}

func TestRunWithoutWindowStopsOnQuit(t *testing.T) {
	l, r := newFakes()
	s := newFakeScene("orrery", l, r)
	e := NewEngine(WithScene(0, s), WithTickRate(200), WithRenderFrameLimit(200))

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool { return s.updates.Load() > 2 }, 2*time.Second, 5*time.Millisecond)
	e.Quit()
	e.Quit()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.Contains(t, l.list(), "present")
}

func TestFrameInterval(t *testing.T) {
	assert.Equal(t, 40*time.Millisecond, frameInterval(25, 60))
	assert.Equal(t, frameInterval(60, 0), frameInterval(-3, 60))
	assert.Zero(t, frameInterval(0, 0))
	assert.Equal(t, 400*time.Millisecond, frameInterval(2.5, 0))
}
