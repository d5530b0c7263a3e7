package status

import (
	"math"
	"sync/atomic"
)

// MaxLabelLen bounds Label values; state names and short identifiers fit
const MaxLabelLen = 32

// Float is an atomic float64 stored as IEEE bits
// Zero value reads 0.0
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Store(v float64) { f.bits.Store(math.Float64bits(v)) }
func (f *Float) Load() float64   { return math.Float64frombits(f.bits.Load()) }

// Add adds delta and returns the new value
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Label is an atomic short string, truncated to MaxLabelLen bytes
type Label struct {
	ptr atomic.Pointer[string]
}

func (l *Label) Store(v string) {
	if len(v) > MaxLabelLen {
		v = v[:MaxLabelLen]
	}
	l.ptr.Store(&v)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
