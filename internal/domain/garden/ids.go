package garden

import (
	"fmt"
	"sync/atomic"
)

// IDSource mints bubble identities. Wall-clock timestamps are not used
// anywhere: rapid sequential creation must never collide.
type IDSource func() string

// NewSequentialIDs returns a monotonic per-session source.
func NewSequentialIDs(prefix string) IDSource {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
