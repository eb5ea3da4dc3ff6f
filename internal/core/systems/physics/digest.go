package physics

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/zeusync/zeuphys/internal/core/geom"
)

// Digest fingerprints the pose and velocity of every live entity, in creation
// order. Two worlds built and stepped identically yield the same digest.
func (w *World) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}

	for _, e := range w.entities {
		pos, vel := e.Position(), e.Velocity()
		writeFloat(pos.X)
		writeFloat(pos.Y)
		writeFloat(e.AngularPosition())
		writeFloat(vel.X)
		writeFloat(vel.Y)
		writeFloat(e.AngularVelocity())
	}
	binary.LittleEndian.PutUint64(buf[:], w.steps)
	_, _ = h.Write(buf[:])

	return h.Sum64()
}

// EntityState is the observable state of one entity at a given step.
type EntityState struct {
	ID              uuid.UUID   `json:"id"`
	Fixed           bool        `json:"fixed"`
	Position        geom.Vector `json:"position"`
	Angle           float64     `json:"angle"`
	Velocity        geom.Vector `json:"velocity"`
	AngularVelocity float64     `json:"angular_velocity"`
}

type Snapshot struct {
	Step     uint64        `json:"step"`
	Entities []EntityState `json:"entities"`
}

func (w *World) Snapshot() Snapshot {
	s := Snapshot{Step: w.steps, Entities: make([]EntityState, 0, len(w.entities))}
	for _, e := range w.entities {
		s.Entities = append(s.Entities, EntityState{
			ID:              e.id,
			Fixed:           e.fixed,
			Position:        e.Position(),
			Angle:           e.AngularPosition(),
			Velocity:        e.Velocity(),
			AngularVelocity: e.AngularVelocity(),
		})
	}
	return s
}
