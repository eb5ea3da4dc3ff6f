package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/systems/physics"
)

const pendulum = `
world:
  gravity: {x: 0, y: -10}
  max_sub_steps: 16
entities:
  - name: ground
    fixed: true
    parts:
      - shape: {type: box, width: 20, height: 1}
        friction: 0.5
  - name: pivot
    fixed: true
    position: {x: 0, y: 8}
  - name: bob
    position: {x: 2, y: 8}
    parts:
      - shape: {type: circle, radius: 0.25}
        density: 2
  - name: crate
    position: {x: 5, y: 2}
    parts:
      - shape:
          type: polygon
          points: [{x: -0.5, y: -0.5}, {x: 0.5, y: -0.5}, {x: 0.5, y: 0.5}, {x: -0.5, y: 0.5}]
constraints:
  - name: arm
    kind: revolute
    first: pivot
    second: bob
    second_anchor: {x: -2, y: 0}
  - kind: rope
    first: pivot
    second: bob
    max_length: 2.5
`

func TestLoadAndInstantiate(t *testing.T) {
	f, err := Load(strings.NewReader(pendulum))
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	assert.Equal(t, geom.V(0, -10), f.World.Gravity)
	assert.Equal(t, physics.DefaultConfig().SubStep, f.World.SubStep)

	w, s, err := f.Instantiate()
	require.NoError(t, err)
	assert.Equal(t, 4, w.EntityCount())
	assert.Equal(t, 16, w.Config().MaxSubSteps)

	bob, ok := s.Entity("bob")
	require.True(t, ok)
	pivot, _ := s.Entity("pivot")
	require.Len(t, bob.Parts(), 1)
	assert.Equal(t, 2.0, bob.Parts()[0].Density())

	arm, ok := s.Constraint("arm")
	require.True(t, ok)
	assert.Equal(t, physics.KindRevolute, arm.Kind())
	assert.Same(t, pivot, arm.FirstEntity())
	require.Len(t, s.Constraints(), 2)
	assert.Equal(t, physics.KindRope, s.Constraints()[1].Kind())

	for range 120 {
		_, err = w.Update(1.0 / 60.0)
		require.NoError(t, err)
	}
	assert.InDelta(t, 2, bob.Position().Sub(pivot.Position()).Length(), 0.05)

	crate, _ := s.Entity("crate")
	assert.InDelta(t, 1, crate.Position().Y, 0.05)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unnamed entity", `
entities:
  - position: {x: 1, y: 1}
`, ErrInvalidScenario},
		{"duplicate entity", `
entities:
  - name: a
  - name: a
`, ErrDuplicateName},
		{"unknown shape", `
entities:
  - name: a
    parts:
      - shape: {type: star}
`, ErrUnknownShape},
		{"unknown reference", `
entities:
  - name: a
constraints:
  - kind: weld
    first: a
    second: b
`, ErrUnknownEntity},
		{"unknown kind", `
entities:
  - name: a
  - name: b
constraints:
  - kind: spring
    first: a
    second: b
`, physics.ErrInvalidArgument},
		{"bad world", `
world:
  sub_step: 0
`, physics.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(strings.NewReader(tt.yaml))
			require.NoError(t, err)
			assert.ErrorIs(t, f.Validate(), tt.want)
		})
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("entities:\n  - name: a\n    colour: red\n"))
	assert.Error(t, err)

	f, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultConfig(), f.World)
}

func TestBuild_RollsBackOnFailure(t *testing.T) {
	f, err := Load(strings.NewReader(`
entities:
  - name: a
    parts:
      - shape: {type: circle, radius: 0.5}
  - name: b
    position: {x: 3, y: 0}
    parts:
      - shape: {type: circle, radius: 0.5}
constraints:
  - kind: distance
    first: a
    second: b
    length: 0
`))
	require.NoError(t, err)

	w, err := physics.NewWorld()
	require.NoError(t, err)
	_, err = f.Build(w)
	assert.ErrorIs(t, err, physics.ErrInvalidArgument)
	assert.Equal(t, 0, w.EntityCount())
}

func TestBuild_PolylineNeedsFixedEntity(t *testing.T) {
	f, err := Load(strings.NewReader(`
entities:
  - name: wall
    parts:
      - shape:
          type: polyline
          points: [{x: 0, y: 0}, {x: 0, y: 5}]
`))
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	w, err := physics.NewWorld()
	require.NoError(t, err)
	_, err = f.Build(w)
	assert.ErrorIs(t, err, physics.ErrPolylineOnMovingBody)
	assert.Equal(t, 0, w.EntityCount())
}

func TestBuild_PointConstraintDefaultsToEntityPosition(t *testing.T) {
	f, err := Load(strings.NewReader(`
entities:
  - name: ball
    position: {x: 1, y: 2}
    parts:
      - shape: {type: circle, radius: 0.5}
constraints:
  - name: grab
    kind: point
    first: ball
    max_force: 100
    frequency: 3
`))
	require.NoError(t, err)
	_, s, err := f.Instantiate()
	require.NoError(t, err)

	c, ok := s.Constraint("grab")
	require.True(t, ok)
	point, ok := c.(*physics.PointConstraint)
	require.True(t, ok)
	assert.Equal(t, geom.V(1, 2), point.Point())
	assert.Equal(t, 3.0, point.Frequency())
}

func TestSampleScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "..", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			fh, err := os.Open(path)
			require.NoError(t, err)
			defer fh.Close()

			f, err := Load(fh)
			require.NoError(t, err)
			w, s, err := f.Instantiate()
			require.NoError(t, err)
			assert.Equal(t, len(f.Entities), w.EntityCount())
			assert.Len(t, s.Constraints(), len(f.Constraints))

			for range 60 {
				_, err = w.Update(1.0 / 60.0)
				require.NoError(t, err)
			}
		})
	}
}
