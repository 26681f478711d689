// Package policy decides when and where to disturb a wave field. All
// randomness comes from a caller-owned source so runs are reproducible.
package policy

import (
	"math"
	"math/rand"
)

// Disturber is the write surface the policies drive.
type Disturber interface {
	RowCount() int
	ColumnCount() int
	Disturb(row, col int, magnitude float32) error
}

// RandomSite picks a strictly interior cell of a rows x cols grid, kept at
// least margin cells from the edge when the grid is large enough for it.
func RandomSite(rng *rand.Rand, rows, cols, margin int) (row, col int) {
	rlo, rhi := interiorRange(rows, margin)
	clo, chi := interiorRange(cols, margin)
	return rlo + rng.Intn(rhi-rlo+1), clo + rng.Intn(chi-clo+1)
}

// interiorRange returns the inclusive index range [lo, hi] for one axis.
func interiorRange(n, margin int) (lo, hi int) {
	lo, hi = 1, n-2
	if margin > 1 && n-1-margin >= margin {
		lo, hi = margin, n-1-margin
	}
	return lo, hi
}

// RandomMagnitude returns a value uniformly distributed in [lo, hi).
func RandomMagnitude(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

// Rain fires one random disturbance for every Interval seconds of elapsed
// time.
type Rain struct {
	// Interval is the time between drops in seconds. Zero disables rain.
	Interval float64
	// MinMagnitude and MaxMagnitude bound the drop strength.
	MinMagnitude, MaxMagnitude float32
	// Margin keeps drops away from the grid edge.
	Margin int
	// MaxBurst caps drops per Tick after a stall; zero means 4.
	MaxBurst int

	elapsed float64
}

// Tick advances the rain timer by dt and disturbs target once per elapsed
// interval. Whole intervals beyond MaxBurst are dropped; the fractional
// remainder carries over. It returns the number of drops fired.
func (r *Rain) Tick(dt float64, rng *rand.Rand, target Disturber) (int, error) {
	if r.Interval <= 0 || dt <= 0 {
		return 0, nil
	}
	burst := r.MaxBurst
	if burst <= 0 {
		burst = 4
	}
	r.elapsed += dt
	fired := 0
	for r.elapsed >= r.Interval && fired < burst {
		r.elapsed -= r.Interval
		row, col := RandomSite(rng, target.RowCount(), target.ColumnCount(), r.Margin)
		m := RandomMagnitude(rng, r.MinMagnitude, r.MaxMagnitude)
		if err := target.Disturb(row, col, m); err != nil {
			return fired, err
		}
		fired++
	}
	if r.elapsed >= r.Interval {
		r.elapsed = math.Mod(r.elapsed, r.Interval)
	}
	return fired, nil
}
