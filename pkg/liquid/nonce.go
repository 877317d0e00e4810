package liquid

import (
	"sync/atomic"
	"time"
)

// nonceSource hands out strictly increasing Unix millisecond timestamps,
// bumping by one when the clock has not moved since the last call.
type nonceSource struct {
	last atomic.Int64
	now  func() time.Time
}

func newNonceSource() *nonceSource {
	return &nonceSource{now: time.Now}
}

func (n *nonceSource) Next() int64 {
	for {
		prev := n.last.Load()
		next := n.now().UnixMilli()
		if next <= prev {
			next = prev + 1
		}
		if n.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}
