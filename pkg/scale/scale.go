// Package scale maps domain values to pixel coordinates. Scales accept
// zero-width and order-reversed domains without failing.
package scale

import (
	"dopingscatter/pkg/domains"
	"dopingscatter/pkg/racetime"
	"math"
	"time"
)

var (
	yearSteps     = []float64{1, 2, 5, 10}
	durationSteps = []float64{
		float64(time.Second),
		float64(5 * time.Second),
		float64(15 * time.Second),
		float64(30 * time.Second),
		float64(time.Minute),
		float64(5 * time.Minute),
		float64(15 * time.Minute),
		float64(30 * time.Minute),
		float64(time.Hour),
	}
)

// Time is a linear scale over calendar time.
type Time struct {
	Domain [2]time.Time
	Range  [2]float64
}

func NewTime(d domains.YearDomain, from, to float64) Time {
	return Time{Domain: [2]time.Time{d.Min, d.Max}, Range: [2]float64{from, to}}
}

func (s Time) Map(t time.Time) float64 {
	span := s.Domain[1].Sub(s.Domain[0])
	if span == 0 {
		return midpoint(s.Range)
	}
	f := float64(t.Sub(s.Domain[0])) / float64(span)
	return s.Range[0] + f*(s.Range[1]-s.Range[0])
}

// YearStep picks a whole number of years giving about count ticks.
func (s Time) YearStep(count int) int {
	span := math.Abs(float64(s.Domain[1].Year() - s.Domain[0].Year()))
	return int(niceStep(span, count, yearSteps))
}

// YearTicks returns January 1 of every year inside the domain that is a
// multiple of step.
func (s Time) YearTicks(step int) []time.Time {
	if step <= 0 {
		step = 1
	}
	lo, hi := s.Domain[0], s.Domain[1]
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	y := lo.Year()
	if domains.YearMarker(y).Before(lo) {
		y++
	}
	if r := y % step; r != 0 {
		y += step - r
	}
	ticks := []time.Time{}
	for ; !domains.YearMarker(y).After(hi); y += step {
		ticks = append(ticks, domains.YearMarker(y))
	}
	return ticks
}

// Duration is a linear scale over race times.
type Duration struct {
	Domain [2]racetime.RaceTime
	Range  [2]float64
}

// NewDuration keeps the inverted order of d: the slowest time maps to from.
func NewDuration(d domains.TimeDomain, from, to float64) Duration {
	return Duration{Domain: [2]racetime.RaceTime{d.Max, d.Min}, Range: [2]float64{from, to}}
}

func (s Duration) Map(t racetime.RaceTime) float64 {
	span := s.Domain[1] - s.Domain[0]
	if span == 0 {
		return midpoint(s.Range)
	}
	f := float64(t-s.Domain[0]) / float64(span)
	return s.Range[0] + f*(s.Range[1]-s.Range[0])
}

// Step picks a duration giving about count ticks.
func (s Duration) Step(count int) time.Duration {
	span := math.Abs(float64(s.Domain[1] - s.Domain[0]))
	return time.Duration(niceStep(span, count, durationSteps))
}

// Ticks returns every multiple of step inside the domain, ascending.
func (s Duration) Ticks(step time.Duration) []racetime.RaceTime {
	if step <= 0 {
		step = time.Second
	}
	lo, hi := s.Domain[0].Duration(), s.Domain[1].Duration()
	if hi < lo {
		lo, hi = hi, lo
	}
	first := lo / step * step
	if first < lo {
		first += step
	}
	ticks := []racetime.RaceTime{}
	for v := first; v <= hi; v += step {
		ticks = append(ticks, racetime.RaceTime(v))
	}
	return ticks
}

// niceStep walks steps, then 2/5/10 multiples of the last one, and returns
// the candidate whose tick count span/step is closest to count.
func niceStep(span float64, count int, steps []float64) float64 {
	target := float64(max(count, 1))
	best := steps[0]
	for i := 0; ; i++ {
		c := stepAt(steps, i)
		if math.Abs(span/c-target) < math.Abs(span/best-target) {
			best = c
		}
		if span/c <= target {
			return best
		}
	}
}

func stepAt(steps []float64, i int) float64 {
	if i < len(steps) {
		return steps[i]
	}
	k := i - len(steps)
	return steps[len(steps)-1] * []float64{2, 5, 10}[k%3] * math.Pow(10, float64(k/3))
}

func midpoint(r [2]float64) float64 {
	return (r[0] + r[1]) / 2
}
