package scenario

import "errors"

var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrUnknownEntity   = errors.New("unknown entity")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrUnknownShape    = errors.New("unknown shape type")
)
