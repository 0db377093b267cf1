package tooltip

import (
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/palette"
	"fmt"

	"github.com/pkg/errors"
)

const (
	offsetRight = "10px"
	offsetLeft  = "calc(-100% - 10px)"
)

var ErrUnknownPoint = errors.New("unknown point")

// Show fully describes a visible tooltip.
type Show struct {
	Year      int      `json:"year"`
	Left      float64  `json:"left"`
	Top       float64  `json:"top"`
	Transform string   `json:"transform"`
	Color     string   `json:"color"`
	Lines     []string `json:"lines"`
}

type Hide struct{}

// Enter handles the pointer entering point index at (x, y). The tooltip
// opens towards the centre of a viewport of the given width.
func Enter(p *chart.Plot, index int, x, y, viewportWidth float64) (Show, error) {
	pt, ok := p.Point(index)
	if !ok {
		return Show{}, errors.Wrapf(ErrUnknownPoint, "index %d", index)
	}

	offset := offsetRight
	if x >= viewportWidth/2 {
		offset = offsetLeft
	}

	r := pt.Record
	lines := []string{
		fmt.Sprintf("%s: %s", r.Name, r.Nationality),
		fmt.Sprintf("Year: %d, Time: %s", r.Year, r.Time),
	}
	if r.Doping != "" {
		lines = append(lines, r.Doping)
	}

	return Show{
		Year:      r.Year,
		Left:      x,
		Top:       y,
		Transform: fmt.Sprintf("translate(%s, -50%%)", offset),
		Color:     palette.Hex(pt.Color),
		Lines:     lines,
	}, nil
}

// Leave handles the pointer leaving any point.
func Leave() Hide {
	return Hide{}
}
