// Package allocate decides how many new entries each source may contribute
// to a run. Each strategy is a pure function of the historical entry set, the
// configured source list and the global capacity.
package allocate

import (
	"github.com/feedworks/friendfeed/internal/config"
	"github.com/feedworks/friendfeed/internal/store"
)

// Strategy selects the allocation policy for a run.
type Strategy string

const (
	Equal    Strategy = "equal"
	Weighted Strategy = "weighted"
	Dynamic  Strategy = "dynamic"
)

// minSourceRatio is the floor applied by the dynamic strategy: no active
// source drops below 10% of capacity, even when its history is thin.
const minSourceRatio = 0.1

// Allocation maps source name to its per-run quota.
type Allocation map[string]int

// Total returns the sum of all quotas.
func (a Allocation) Total() int {
	sum := 0
	for _, n := range a {
		sum += n
	}
	return sum
}

// ParseStrategy resolves a strategy name. Unknown names fall back to Dynamic;
// ok reports whether the name was recognized so the caller can warn.
func ParseStrategy(name string) (s Strategy, ok bool) {
	switch Strategy(name) {
	case Equal, Weighted, Dynamic:
		return Strategy(name), true
	case "":
		return Dynamic, true
	default:
		return Dynamic, false
	}
}

// Allocate computes per-source quotas under the given strategy. For Equal and
// Weighted the quotas sum to capacity exactly. Dynamic may overshoot when
// several sources sit on the 10% floor; the overshoot is allowed rather than
// clamped, since the merge step enforces capacity anyway. No quota is ever
// negative.
func Allocate(historical []store.Entry, sources []config.Source, capacity int, strategy Strategy) Allocation {
	if len(sources) == 0 || capacity <= 0 {
		return Allocation{}
	}

	switch strategy {
	case Equal:
		return allocateEqual(sources, capacity)
	case Weighted:
		return allocateWeighted(sources, capacity)
	default:
		return allocateDynamic(historical, sources, capacity)
	}
}

// allocateEqual splits capacity evenly; the integer remainder goes one-per-
// source to the first sources in configuration order.
func allocateEqual(sources []config.Source, capacity int) Allocation {
	n := len(sources)
	base := capacity / n
	remainder := capacity % n

	alloc := make(Allocation, n)
	for i, src := range sources {
		quota := base
		if i < remainder {
			quota++
		}
		alloc[src.Name] = quota
	}
	return alloc
}

// allocateWeighted assigns floor(capacity*weight/totalWeight) to each source
// except the last, which absorbs the residual so the total is exact.
func allocateWeighted(sources []config.Source, capacity int) Allocation {
	totalWeight := 0
	for _, src := range sources {
		totalWeight += src.EffectiveWeight()
	}

	alloc := make(Allocation, len(sources))
	assigned := 0
	for i, src := range sources {
		if i == len(sources)-1 {
			alloc[src.Name] = capacity - assigned
			break
		}
		quota := capacity * src.EffectiveWeight() / totalWeight
		alloc[src.Name] = quota
		assigned += quota
	}
	return alloc
}

// allocateDynamic sizes each quota by the source's share of the historical
// set, floored at 10% so an under-represented source is never starved. With
// no history it degrades to equal allocation. The last source absorbs the
// residual, clamped at zero: when many sources ride the floor the floor-sum
// can exceed capacity, and we let that stand.
func allocateDynamic(historical []store.Entry, sources []config.Source, capacity int) Allocation {
	counts := store.CountBySource(historical)
	total := 0
	for _, src := range sources {
		total += counts[src.Name]
	}
	if total == 0 {
		return allocateEqual(sources, capacity)
	}

	alloc := make(Allocation, len(sources))
	assigned := 0
	for i, src := range sources {
		if i == len(sources)-1 {
			residual := capacity - assigned
			if residual < 0 {
				residual = 0
			}
			alloc[src.Name] = residual
			break
		}
		ratio := float64(counts[src.Name]) / float64(total)
		if ratio < minSourceRatio {
			ratio = minSourceRatio
		}
		quota := int(ratio * float64(capacity))
		alloc[src.Name] = quota
		assigned += quota
	}
	return alloc
}
