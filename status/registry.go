package status

import (
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
)

// Table holds named metrics of one type
// Get allocates on first use; the returned pointer is stable, so producers cache it
type Table[T any] struct {
	items sync.Map // string -> *T
	count atomic.Int64
}

// Get returns the metric for key, creating it if absent
func (t *Table[T]) Get(key string) *T {
	if v, ok := t.items.Load(key); ok {
		return v.(*T)
	}
	v, loaded := t.items.LoadOrStore(key, new(T))
	if !loaded {
		t.count.Add(1)
	}
	return v.(*T)
}

// Has reports whether key was ever requested
func (t *Table[T]) Has(key string) bool {
	_, ok := t.items.Load(key)
	return ok
}

// Keys returns registered keys in sorted order
func (t *Table[T]) Keys() []string {
	var keys []string
	t.items.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

func (t *Table[T]) Count() int { return int(t.count.Load()) }

// Registry is the metrics facade shared by the world, HUD and services
// The world publishes per-tick counters; readers observe them without locking
type Registry struct {
	Bools  Table[atomic.Bool]
	Ints   Table[atomic.Int64]
	Floats Table[Float]
	Labels Table[Label]
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Count returns the number of metrics across all tables
func (r *Registry) Count() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Labels.Count()
}

// Metric is one formatted reading
type Metric struct {
	Key   string
	Value string
}

// Snapshot formats every metric, sorted by key
func (r *Registry) Snapshot() []Metric {
	out := make([]Metric, 0, r.Count())
	for _, k := range r.Bools.Keys() {
		out = append(out, Metric{k, strconv.FormatBool(r.Bools.Get(k).Load())})
	}
	for _, k := range r.Ints.Keys() {
		out = append(out, Metric{k, strconv.FormatInt(r.Ints.Get(k).Load(), 10)})
	}
	for _, k := range r.Floats.Keys() {
		out = append(out, Metric{k, strconv.FormatFloat(r.Floats.Get(k).Load(), 'f', 1, 64)})
	}
	for _, k := range r.Labels.Keys() {
		out = append(out, Metric{k, r.Labels.Get(k).Load()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
