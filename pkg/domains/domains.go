// Package domains derives the axis domains of the scatter plot from the
// dataset: padded calendar years on x, inverted race times on y.
package domains

import (
	"dopingscatter/pkg/model"
	"dopingscatter/pkg/racetime"
	"time"

	"github.com/pkg/errors"
)

// YearPad is the number of years added on each side of the x domain.
const YearPad = 1

// ErrEmptyDataset is returned when a domain is requested for zero records.
var ErrEmptyDataset = errors.New("empty dataset")

// YearDomain holds January 1 of the first and last padded years.
type YearDomain struct {
	Min time.Time
	Max time.Time
}

func (d YearDomain) Width() time.Duration {
	return d.Max.Sub(d.Min)
}

// TimeDomain is ordered slowest first so that an ascending pixel range
// puts the fastest times at the top of the chart.
type TimeDomain struct {
	Max racetime.RaceTime
	Min racetime.RaceTime
}

func (d TimeDomain) Width() time.Duration {
	return d.Max.Duration() - d.Min.Duration()
}

type Domains struct {
	X YearDomain
	Y TimeDomain
}

// YearMarker returns January 1 of year, the value plotted for a record's year.
func YearMarker(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Compute returns the x and y domains for records in a single pass.
func Compute(records []model.RaceRecord) (Domains, error) {
	if len(records) == 0 {
		return Domains{}, ErrEmptyDataset
	}

	var (
		minYear, maxYear int
		minTime, maxTime racetime.RaceTime
	)
	for i, r := range records {
		t, err := racetime.Normalize(r.Time)
		if err != nil {
			return Domains{}, errors.Wrapf(err, "record %d (%s)", i, r.Name)
		}
		if i == 0 {
			minYear, maxYear = r.Year, r.Year
			minTime, maxTime = t, t
			continue
		}
		if r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
		if t < minTime {
			minTime = t
		}
		if t > maxTime {
			maxTime = t
		}
	}

	return Domains{
		X: YearDomain{
			Min: YearMarker(minYear - YearPad),
			Max: YearMarker(maxYear + YearPad),
		},
		Y: TimeDomain{
			Max: maxTime,
			Min: minTime,
		},
	}, nil
}
