package palette

import (
	"dopingscatter/pkg/model"
	"fmt"
	"image/color"
)

// First two entries of the category10 scheme.
var (
	Blue   = color.RGBA{0x1f, 0x77, 0xb4, 0xff}
	Orange = color.RGBA{0xff, 0x7f, 0x0e, 0xff}
)

const (
	LabelClean  = "No doping allegations"
	LabelDoping = "Riders with doping allegations"
)

type Entry struct {
	Color color.RGBA
	Label string
}

// ColorFor depends on the doping note only.
func ColorFor(r model.RaceRecord) color.RGBA {
	if r.HasDopingAllegation() {
		return Blue
	}
	return Orange
}

// Legend returns the legend rows in display order.
func Legend() []Entry {
	return []Entry{
		{Color: Orange, Label: LabelClean},
		{Color: Blue, Label: LabelDoping},
	}
}

func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
