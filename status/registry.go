package status

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// Registry groups simulation metrics by value type
// Producers cache pointers at construction; the HUD reads them through Snapshot
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Sample is one formatted metric
type Sample struct {
	Key   string
	Value string
}

// Snapshot formats every metric, sorted by key across all types
func (r *Registry) Snapshot() []Sample {
	out := make([]Sample, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, Sample{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, Sample{k, strconv.FormatFloat(v.Get(), 'g', 5, 64)})
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, Sample{k, v.Load()})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
