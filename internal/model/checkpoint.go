package model

import "time"

// CheckpointID is the identifier of the single checkpoint record in the meta namespace.
const CheckpointID = "checkpoint"

// Checkpoint records the highest fully committed block number.
type Checkpoint struct {
	LastIndexedBlock uint64    `json:"last_indexed_block"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Next is the first block number not covered by the checkpoint.
func (c Checkpoint) Next() uint64 {
	return c.LastIndexedBlock + 1
}
