package status

import (
	"sync/atomic"
)

// MaxStringLen caps label length so HUD rows stay aligned
const MaxStringLen = 24

// AtomicString holds a short label, zero value reads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncating to MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
