package physics

import "errors"

var (
	ErrDestroyed            = errors.New("object has been destroyed")
	ErrWorldLocked          = errors.New("world is locked: structural changes are not allowed during simulation callbacks")
	ErrNegativeDelta        = errors.New("delta time must be finite and non-negative")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrMissingShape         = errors.New("part builder has no shape")
	ErrPolylineOnMovingBody = errors.New("shape without mass can only be attached to a fixed entity")
	ErrMissingEntity        = errors.New("constraint entity is not set")
	ErrForeignEntity        = errors.New("entity belongs to another world")
	ErrSameEntity           = errors.New("constraint needs two distinct entities")
	ErrInvalidConfig        = errors.New("invalid world configuration")
	ErrEngine               = errors.New("physics engine rejected the operation")
)
