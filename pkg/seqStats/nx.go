package seqStats

import (
	"math"
	"slices"
)

// SortDesc sorts lengths longest first, in place.
func SortDesc(lengths []uint64) {
	slices.SortFunc(lengths, func(a, b uint64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
}

// Nx walks lengths (sorted descending) and returns the length at the first
// index where the running sum reaches total*x, together with its 1-based
// rank. Both are zero when total is zero.
func Nx(sorted []uint64, total uint64, x float64) (uint64, int) {
	if total == 0 {
		return 0, 0
	}
	var (
		limit = float64(total) * x
		sum   uint64
	)
	for i, l := range sorted {
		sum += l
		if float64(sum) >= limit {
			return l, i + 1
		}
	}
	return 0, 0
}

// Thresholds holds N50/N75/N90 and the rank of N50.
type Thresholds struct {
	N50, N75, N90 uint64
	I50           uint64
}

// NxThresholds computes N50, N75, N90 and I50 in one pass.
func NxThresholds(sorted []uint64, total uint64) Thresholds {
	var th Thresholds
	if total == 0 {
		return th
	}
	var (
		sum    uint64
		half   = float64(total) * 0.5
		three4 = float64(total) * 0.75
		ninety = float64(total) * 0.9
		got50  bool
		got75  bool
	)
	for i, l := range sorted {
		sum += l
		var s = float64(sum)
		if !got50 && s >= half {
			th.N50, th.I50, got50 = l, uint64(i+1), true
		}
		if !got75 && s >= three4 {
			th.N75, got75 = l, true
		}
		if s >= ninety {
			th.N90 = l
			break
		}
	}
	return th
}

// AuN is the area under the Nx curve: each length contributes
// len*(len/total), capped at the remaining mass, and the sum is rounded
// to the nearest integer.
func AuN(sorted []uint64, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	var (
		aun   float64
		cum   uint64
		limit = float64(total)
	)
	for _, l := range sorted {
		if cum >= total {
			break
		}
		var eff = l
		if cum+l > total {
			eff = total - cum
		}
		aun += float64(eff) * (float64(eff) / limit)
		cum += l
	}
	return uint64(math.Floor(aun + 0.5))
}

// Curve returns N1..N100; Curve(...)[x-1] is Nx at x percent.
func Curve(sorted []uint64, total uint64) []uint64 {
	var curve = make([]uint64, 100)
	if total == 0 {
		return curve
	}
	var (
		sum uint64
		x   = 1
	)
	for _, l := range sorted {
		sum += l
		for x <= 100 && float64(sum) >= float64(total)*float64(x)/100 {
			curve[x-1] = l
			x++
		}
		if x > 100 {
			break
		}
	}
	return curve
}

// Summary is the length-only digest shared by the aggregator and the
// read simulator.
type Summary struct {
	Count    uint64
	Total    uint64
	Min, Max uint64
	Thresholds
	AuN uint64
}

// Summarize sorts a copy of lengths and computes the length statistics.
func Summarize(lengths []uint64) Summary {
	var sorted = slices.Clone(lengths)
	SortDesc(sorted)
	return summarizeSorted(sorted)
}

func summarizeSorted(sorted []uint64) Summary {
	var sum = Summary{Count: uint64(len(sorted))}
	for _, l := range sorted {
		sum.Total += l
	}
	if len(sorted) > 0 {
		sum.Max = sorted[0]
		sum.Min = sorted[len(sorted)-1]
	}
	sum.Thresholds = NxThresholds(sorted, sum.Total)
	sum.AuN = AuN(sorted, sum.Total)
	return sum
}
