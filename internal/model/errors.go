package model

import "errors"

var (
	// ErrSerialization marks a block or transaction that cannot be mapped to its persisted shape.
	ErrSerialization = errors.New("serialization error")
	// ErrCheckpointConflict is returned by stores when a compare-and-set checkpoint write lost.
	ErrCheckpointConflict = errors.New("checkpoint conflict")
)
