package signal

import "github.com/zeusync/zeuphys/internal/core/systems/physics"

// ContactSignal is a contact listener whose intensity is 1 while at least one
// contact of the entity it is registered on is alive.
type ContactSignal struct {
	count int
}

var (
	_ physics.ContactListener = (*ContactSignal)(nil)
	_ Signal                  = (*ContactSignal)(nil)
)

func NewContactSignal() *ContactSignal { return &ContactSignal{} }

func (s *ContactSignal) BeginContact(*physics.Contact) { s.count++ }

func (s *ContactSignal) EndContact(*physics.Contact) {
	if s.count > 0 {
		s.count--
	}
}

func (s *ContactSignal) Intensity() float64 {
	if s.count > 0 {
		return 1
	}
	return 0
}
