package scene

import (
	"log"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/model"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
)

// assetQueueSize bounds the loader's task queue. The scene submits one task per mesh and texture.
const assetQueueSize = 64

// assets holds the CPU-side resources of the scene, ready for GPU upload.
type assets struct {
	meshes   map[string]model.Mesh
	textures map[string]common.TextureStagingData
}

// loadAssets generates every mesh and decodes every texture referenced by materials on a
// worker pool. A texture that fails to load is replaced by a 1x1 white texture and a warning
// is logged, so loading never fails.
//
// Parameters:
//   - workers: the maximum number of concurrent workers
//   - generators: the mesh constructors keyed by mesh name
//   - materials: the materials whose textures are decoded
//   - textureDir: the directory texture file names are resolved against
//   - maxTextureSize: the cap on the larger texture side, 0 for none
//
// Returns:
//   - assets: the generated meshes and decoded textures
func loadAssets(workers int, generators map[string]func() model.Mesh, materials map[string]material.Material, textureDir string, maxTextureSize int) assets {
	start := time.Now()

	files := textureFiles(materials)
	meshNames := make([]string, 0, len(generators))
	for name := range generators {
		meshNames = append(meshNames, name)
	}
	sort.Strings(meshNames)

	meshes := make([]model.Mesh, len(meshNames))
	textures := make([]common.TextureStagingData, len(files))

	pool := worker.NewDynamicWorkerPool(workers, assetQueueSize, time.Second)
	defer pool.Stop()

	// Task results are written to distinct slice slots, so the WaitGroup is the only barrier.
	var wg sync.WaitGroup
	taskID := 0
	for i, name := range meshNames {
		gen := generators[name]
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      taskID,
			Payload: name,
			Do: func() (any, error) {
				defer wg.Done()
				meshes[i] = gen()
				return nil, nil
			},
		})
		taskID++
	}
	for i, file := range files {
		src := common.TextureSource{
			Name:    file,
			Path:    filepath.Join(textureDir, file),
			MaxSize: maxTextureSize,
		}
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      taskID,
			Payload: file,
			Do: func() (any, error) {
				defer wg.Done()
				data, err := src.Decode()
				if err != nil {
					log.Printf("[Scene] texture %s unavailable, using white: %v", file, err)
					data = common.WhiteTexture()
				}
				textures[i] = data
				return nil, err
			},
		})
		taskID++
	}
	wg.Wait()

	out := assets{
		meshes:   make(map[string]model.Mesh, len(meshNames)),
		textures: make(map[string]common.TextureStagingData, len(files)),
	}
	for i, name := range meshNames {
		out.meshes[name] = meshes[i]
	}
	for i, file := range files {
		out.textures[file] = textures[i]
	}
	log.Printf("[Scene] loaded %d meshes and %d textures in %s", len(meshes), len(files), time.Since(start).Round(time.Millisecond))
	return out
}

// textureFiles returns the distinct texture files referenced by materials, sorted.
func textureFiles(materials map[string]material.Material) []string {
	set := make(map[string]struct{})
	for _, m := range materials {
		if m.Textured() {
			set[m.Texture()] = struct{}{}
		}
	}
	files := make([]string, 0, len(set))
	for f := range set {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
