package solar

import (
	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/model"
	"github.com/Carmen-Shannon/oxy-orrery/engine/renderer/material"
)

// Mesh keys.
const (
	MeshBall1     = "ball_1"
	MeshBall2     = "ball_2"
	MeshBall3Flat = "ball_3_flat"
	MeshBall4     = "ball_4"
	MeshBall5x5   = "ball_5_x5"
	MeshBall6     = "ball_6"
	MeshStar      = "star"
)

// Material keys.
const (
	MaterialPlastic      = "plastic"
	MaterialPlasticStars = "plastic_stars"
	MaterialMetal        = "metal"
	MaterialMetalEarth   = "metal_earth"
	MaterialJaggedRock   = "jagged_rock"
	MaterialSilver       = "silver"
	MaterialEarth        = "earth"
	MaterialBricks4      = "bricks_4"
	MaterialBricks5      = "bricks_5"
	MaterialStars        = "stars"
	MaterialMoon1        = "moon_1"
	MaterialMoon2        = "moon_2"
	MaterialSun          = "sun"
)

// Texture files, resolved against the configured texture directory.
const (
	TextureStars    = "stars.png"
	TextureEarth    = "earth.gif"
	TextureBricks   = "bricks.png"
	TextureStarFace = "star_face.png"
)

// MeshGenerators returns a constructor for every mesh the scene can draw.
// The constructors are independent and may run concurrently.
//
// Returns:
//   - map[string]func() model.Mesh: generators keyed by mesh key
func MeshGenerators() map[string]func() model.Mesh {
	return map[string]func() model.Mesh{
		MeshBall1:     func() model.Mesh { return model.NewSubdivisionSphere(1) },
		MeshBall2:     func() model.Mesh { return model.NewSubdivisionSphere(2) },
		MeshBall3Flat: func() model.Mesh { return model.FlatShaded(model.NewSubdivisionSphere(3)) },
		MeshBall4:     func() model.Mesh { return model.NewSubdivisionSphere(4) },
		MeshBall5x5:   func() model.Mesh { return model.ScaleTexCoords(model.NewSubdivisionSphere(5), 5) },
		MeshBall6:     func() model.Mesh { return model.NewSubdivisionSphere(6) },
		MeshStar:      model.NewPlanarStar,
	}
}

// Materials returns the scene's base materials keyed by name. Callers receive a fresh map
// and per-frame changes go through material.Override.
//
// Returns:
//   - map[string]material.Material: the material table
func Materials() map[string]material.Material {
	grey := [4]float32{0.4, 0.4, 0.4, 1}
	pink := [4]float32{1, 0.5, 1, 1}
	white := [4]float32{1, 1, 1, 1}

	table := []material.Material{
		material.NewMaterial(MaterialPlastic, material.ProgramPhong,
			material.WithColor(pink), material.WithSpecularity(0)),
		material.NewMaterial(MaterialPlasticStars, material.ProgramPhong,
			material.WithColor(grey), material.WithSpecularity(0),
			material.WithTexture(TextureStars, common.FilterLinear), material.WithBumpMapping(true)),
		material.NewMaterial(MaterialMetal, material.ProgramPhong,
			material.WithColor(pink)),
		material.NewMaterial(MaterialMetalEarth, material.ProgramPhong,
			material.WithColor(grey),
			material.WithTexture(TextureEarth, common.FilterLinear), material.WithBumpMapping(true)),
		material.NewMaterial(MaterialJaggedRock, material.ProgramPhong,
			material.WithColor([4]float32{0.7, 0.7, 0.7, 1}), material.WithSpecularity(0)),
		material.NewMaterial(MaterialSilver, material.ProgramPhong,
			material.WithColor([4]float32{0.6, 0.6, 0.6, 1}), material.WithDiffusivity(0)),
		material.NewMaterial(MaterialEarth, material.ProgramPhong,
			material.WithColor(grey), material.WithDiffusivity(0.8), material.WithSpecularity(0.2),
			material.WithTexture(TextureEarth, common.FilterLinear), material.WithBumpMapping(true)),
		material.NewMaterial(MaterialBricks4, material.ProgramPhong,
			material.WithColor(grey), material.WithSmoothness(10),
			material.WithTexture(TextureBricks, common.FilterNearest), material.WithBumpMapping(true)),
		material.NewMaterial(MaterialBricks5, material.ProgramPhong,
			material.WithColor(grey), material.WithSmoothness(10),
			material.WithTexture(TextureBricks, common.FilterLinear), material.WithBumpMapping(true)),
		material.NewMaterial(MaterialStars, material.ProgramPhong,
			material.WithAmbient(1), material.WithDiffusivity(0), material.WithSpecularity(0),
			material.WithTexture(TextureStarFace, common.FilterLinear), material.WithBumpMapping(true)),
		material.NewMaterial(MaterialMoon1, material.ProgramRipple,
			material.WithColor(white), material.WithSpecularity(0.5)),
		material.NewMaterial(MaterialMoon2, material.ProgramGouraud,
			material.WithColor(white), material.WithSpecularity(0.5)),
		material.NewMaterial(MaterialSun, material.ProgramSun,
			material.WithColor([4]float32{1, 1, 0, 1}), material.WithAmbient(1)),
	}

	out := make(map[string]material.Material, len(table))
	for _, m := range table {
		out[m.Name()] = m
	}
	return out
}
