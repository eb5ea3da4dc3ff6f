package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/zeuphys/internal/core/geom"
	"github.com/zeusync/zeuphys/internal/core/shape"
)

func TestEntityBuilder_InitialState(t *testing.T) {
	w := newTestWorld(t, geom.Zero)
	e, err := w.CreateEntityBuilder().
		SetPosition(geom.V(3, 4)).
		SetAngularPosition(math.Pi / 2).
		SetVelocity(geom.V(1, 0)).
		SetAngularVelocity(0.5).
		SetRotationFixed(true).
		SetBullet(true).
		Build()
	require.NoError(t, err)

	assert.True(t, e.IsAlive())
	assert.False(t, e.IsFixed())
	assert.True(t, e.IsRotationFixed())
	assert.True(t, e.IsBullet())
	assert.Equal(t, geom.V(3, 4), e.Position())
	assert.InDelta(t, math.Pi/2, e.AngularPosition(), 1e-12)
	assert.Equal(t, geom.V(1, 0), e.Velocity())

	tr := e.Transform()
	assert.True(t, tr.Origin().ApproxEqual(geom.V(3, 4), 1e-12))
	assert.True(t, tr.OnVector(geom.UnitX).ApproxEqual(geom.UnitY, 1e-12))
}

func TestEntityBuilder_RejectsInvalidState(t *testing.T) {
	w := newTestWorld(t, geom.Zero)

	_, err := w.CreateEntityBuilder().SetPosition(geom.V(math.NaN(), 0)).Build()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = w.CreateEntityBuilder().SetLinearDamping(-1).Build()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, 0, w.EntityCount())
}

func TestEntity_SetPoseInvalidatesTransform(t *testing.T) {
	w := newTestWorld(t, geom.Zero)
	e, _ := newBall(t, w, geom.V(0, 0), 1)

	_ = e.Transform()
	require.NoError(t, e.SetPosition(geom.V(7, -2)))
	assert.Equal(t, geom.V(7, -2), e.Transform().Origin())

	require.NoError(t, e.SetAngularPosition(math.Pi))
	assert.InDelta(t, math.Pi, e.Transform().Angle(), 1e-9)
	assert.Equal(t, geom.V(7, -2), e.Position())
}

func TestEntity_ForcesAndImpulses(t *testing.T) {
	w := newTestWorld(t, geom.Zero)
	e, _ := newBall(t, w, geom.Zero, 0.5)
	require.Greater(t, e.Mass(), 0.0)

	require.NoError(t, e.ApplyImpulse(geom.V(e.Mass(), 0), nil))
	assert.InDelta(t, 1, e.Velocity().X, 1e-9)

	require.NoError(t, e.ApplyForce(geom.V(0, 10), nil))
	_, err := w.Update(1.0 / 60.0)
	require.NoError(t, err)
	assert.Greater(t, e.Velocity().Y, 0.0)

	require.NoError(t, e.ApplyAngularImpulse(1))
	assert.Greater(t, e.AngularVelocity(), 0.0)

	require.NoError(t, e.ApplyAngularForce(-100))
	point := e.Position().Add(geom.V(0, 0.5))
	require.NoError(t, e.ApplyForce(geom.V(1, 0), &point))

	assert.ErrorIs(t, e.ApplyForce(geom.V(math.Inf(1), 0), nil), ErrInvalidArgument)
}

func TestEntity_DestroyKeepsLastPose(t *testing.T) {
	w := newTestWorld(t, geom.Zero)
	e, p := newBall(t, w, geom.V(2, 3), 0.5)
	require.NoError(t, e.SetVelocity(geom.V(4, 0)))
	_, err := w.Update(0.5)
	require.NoError(t, err)

	pos := e.Position()
	require.NoError(t, e.Destroy())

	assert.False(t, e.IsAlive())
	assert.False(t, p.IsAlive())
	assert.Nil(t, p.Entity())
	assert.Empty(t, e.Parts())
	assert.Equal(t, pos, e.Position())
	assert.Equal(t, pos, e.Transform().Origin())

	assert.ErrorIs(t, e.Destroy(), ErrDestroyed)
	assert.ErrorIs(t, e.SetVelocity(geom.Zero), ErrDestroyed)
	assert.ErrorIs(t, e.SetPosition(geom.Zero), ErrDestroyed)
	assert.ErrorIs(t, e.ApplyImpulse(geom.UnitX, nil), ErrDestroyed)
	assert.ErrorIs(t, e.AddContactListener(NewBasicContactListener()), ErrDestroyed)
	assert.ErrorIs(t, p.SetFriction(1), ErrDestroyed)

	circle, err := shape.NewCircle(1, geom.Zero)
	require.NoError(t, err)
	_, err = e.CreatePartBuilder().SetShape(circle).Build()
	assert.ErrorIs(t, err, ErrDestroyed)
}

func TestPartBuilder_Defaults(t *testing.T) {
	w := newTestWorld(t, geom.Zero)
	_, p := newBall(t, w, geom.Zero, 1)

	assert.Equal(t, 1.0, p.Density())
	assert.Equal(t, 0.0, p.Friction())
	assert.Equal(t, 0.0, p.Restitution())
	assert.False(t, p.IsGhost())
	assert.Equal(t, DefaultCollisionSignature, p.CollisionSignature())
	assert.Equal(t, DefaultCollisionEffect, p.CollisionEffect())
	assert.Equal(t, int16(0), p.CollisionGroup())
}

func TestPartBuilder_Validation(t *testing.T) {
	w := newTestWorld(t, geom.Zero)
	dynamic, err := w.CreateEntityBuilder().Build()
	require.NoError(t, err)
	fixed, err := w.CreateEntityBuilder().SetFixed(true).Build()
	require.NoError(t, err)
	line, err := shape.NewPolylineXY(false, 0, 0, 5, 0, 5, 5)
	require.NoError(t, err)
	circle, err := shape.NewCircle(1, geom.Zero)
	require.NoError(t, err)

	_, err = dynamic.CreatePartBuilder().Build()
	assert.ErrorIs(t, err, ErrMissingShape)

	_, err = dynamic.CreatePartBuilder().SetShape(line).Build()
	assert.ErrorIs(t, err, ErrPolylineOnMovingBody)
	assert.Empty(t, dynamic.Parts())

	_, err = dynamic.CreatePartBuilder().SetShape(circle).SetFriction(-1).Build()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = dynamic.CreatePartBuilder().SetShape(circle).SetDensity(math.NaN()).Build()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, dynamic.Parts())

	p, err := fixed.CreatePartBuilder().SetShape(line).Build()
	require.NoError(t, err)
	assert.Equal(t, []*Part{p}, fixed.Parts())
	assert.Same(t, fixed, p.Entity())
	assert.Same(t, line, p.Shape())
}

func TestPart_Setters(t *testing.T) {
	w := newTestWorld(t, geom.Zero)
	e, p := newBall(t, w, geom.Zero, 1)
	mass := e.Mass()

	require.NoError(t, p.SetFriction(0.8))
	require.NoError(t, p.SetRestitution(0.4))
	require.NoError(t, p.SetGhost(true))
	require.NoError(t, p.SetCollisionFilter(0x0002, 0x0004, -1))
	require.NoError(t, p.SetDensity(2))

	assert.Equal(t, 0.8, p.Friction())
	assert.Equal(t, 0.4, p.Restitution())
	assert.True(t, p.IsGhost())
	assert.Equal(t, uint16(0x0002), p.CollisionSignature())
	assert.Equal(t, uint16(0x0004), p.CollisionEffect())
	assert.Equal(t, int16(-1), p.CollisionGroup())
	assert.InDelta(t, 2*mass, e.Mass(), 1e-9)

	assert.ErrorIs(t, p.SetRestitution(-0.1), ErrInvalidArgument)
}

func TestPart_Destroy(t *testing.T) {
	w := newTestWorld(t, geom.Zero)
	e, first := newBall(t, w, geom.Zero, 1)
	box, err := shape.NewBox(1, 1)
	require.NoError(t, err)
	second, err := e.CreatePartBuilder().SetShape(box).Build()
	require.NoError(t, err)
	assert.Greater(t, second.ID(), first.ID())

	require.NoError(t, first.Destroy())
	assert.False(t, first.IsAlive())
	assert.Nil(t, first.Entity())
	assert.Equal(t, []*Part{second}, e.Parts())
	assert.ErrorIs(t, first.Destroy(), ErrDestroyed)
	assert.True(t, e.IsAlive())
}

func TestPart_PolylineIsSinglePart(t *testing.T) {
	w := newTestWorld(t, geom.Zero)
	ground, err := w.CreateEntityBuilder().SetFixed(true).Build()
	require.NoError(t, err)
	line, err := shape.NewPolylineXY(true, 0, 0, 4, 0, 4, 4, 0, 4)
	require.NoError(t, err)
	p, err := ground.CreatePartBuilder().SetShape(line).Build()
	require.NoError(t, err)
	require.Len(t, p.fixtures, 4)

	require.NoError(t, ground.Destroy())
	assert.False(t, p.IsAlive())
}

func TestPart_CollisionFilterReachesEngine(t *testing.T) {
	circle, err := shape.NewCircle(0.5, geom.Zero)
	require.NoError(t, err)

	tests := []struct {
		name         string
		groundGroup  int16
		ballMask     uint16
		ballGroup    int16
		fallsThrough bool
	}{
		{"default filter collides", 0, DefaultCollisionEffect, 0, false},
		{"mask excludes ground", 0, 0x0001, 0, true},
		{"shared negative group never collides", -1, DefaultCollisionEffect, -1, true},
		{"shared positive group overrides mask", 3, 0x0001, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, geom.V(0, -10))
			_, ground := newGround(t, w)
			require.NoError(t, ground.SetCollisionFilter(0x0002, DefaultCollisionEffect, tt.groundGroup))

			ball, err := w.CreateEntityBuilder().SetPosition(geom.V(0, 1.5)).Build()
			require.NoError(t, err)
			_, err = ball.CreatePartBuilder().
				SetShape(circle).
				SetCollisionEffect(tt.ballMask).
				SetCollisionGroup(tt.ballGroup).
				Build()
			require.NoError(t, err)

			settle(t, w, 120)
			if tt.fallsThrough {
				assert.Less(t, ball.Position().Y, -5.0)
			} else {
				assert.InDelta(t, 1, ball.Position().Y, 0.05)
			}
		})
	}
}
