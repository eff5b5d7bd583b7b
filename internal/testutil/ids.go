package testutil

import (
	"fmt"
	"sync/atomic"
)

// SequenceIDs generates predictable IDs: "<prefix>-0001", "<prefix>-0002", ...
//
// Thread-safety: safe for concurrent use.
type SequenceIDs struct {
	prefix string
	n      atomic.Int64
}

// NewSequenceIDs creates a generator. An empty prefix defaults to "test".
func NewSequenceIDs(prefix string) *SequenceIDs {
	if prefix == "" {
		prefix = "test"
	}
	return &SequenceIDs{prefix: prefix}
}

// NewID returns the next ID.
func (g *SequenceIDs) NewID() string {
	return fmt.Sprintf("%s-%04d", g.prefix, g.n.Add(1))
}
