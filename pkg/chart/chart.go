// Package chart holds the immutable description of the scatter plot and
// replays it onto any Surface.
package chart

import (
	"dopingscatter/pkg/domains"
	"dopingscatter/pkg/model"
	"dopingscatter/pkg/palette"
	"dopingscatter/pkg/racetime"
	"dopingscatter/pkg/scale"
	"fmt"
	"image/color"

	"github.com/pkg/errors"
)

const (
	XAxisID      = "x-axis"
	YAxisID      = "y-axis"
	LegendID     = "legend"
	YAxisCaption = "Time in Minutes"

	legendRowHeight = 20
	captionFontSize = 12.8
)

// Config sizes the canvas. Ticks is the approximate number of ticks per
// axis, the step is derived from the domain.
type Config struct {
	Width   float64
	Height  float64
	Padding float64
	Radius  float64
	Ticks   int
}

func DefaultConfig() Config {
	return Config{
		Width:   900,
		Height:  600,
		Padding: 50,
		Radius:  5,
		Ticks:   10,
	}
}

type Orientation int

const (
	Bottom Orientation = iota
	Left
)

type Tick struct {
	Pos   float64
	Label string
}

// Axis is positioned like an svg group: Offset translates it along the
// axis normal, From/To are the pixel ends of the domain line.
type Axis struct {
	ID          string
	Orientation Orientation
	Offset      float64
	From        float64
	To          float64
	Ticks       []Tick
}

type Point struct {
	Index  int
	X      float64
	Y      float64
	Radius float64
	Color  color.RGBA
	Time   racetime.RaceTime
	Record model.RaceRecord
}

// XValue is the year exposed as data-xvalue.
func (p Point) XValue() string {
	return fmt.Sprint(p.Record.Year)
}

// YValue is the epoch-anchored race time exposed as data-yvalue.
func (p Point) YValue() string {
	return p.Time.Stamp().Format("2006-01-02T15:04:05.000Z")
}

type Legend struct {
	ID        string
	X         float64
	Y         float64
	RowHeight float64
	Entries   []palette.Entry
}

type Label struct {
	X        float64
	Y        float64
	Text     string
	FontSize float64
}

// Surface is the drawing collaborator a Plot renders onto.
type Surface interface {
	CreateCanvas(width, height float64) error
	DrawAxis(a Axis) error
	DrawLabel(l Label) error
	DrawLegend(l Legend) error
	DrawPoint(p Point) error
}

type Plot struct {
	cfg     Config
	domains domains.Domains
	x       scale.Time
	y       scale.Duration
	xAxis   Axis
	yAxis   Axis
	legend  Legend
	caption Label
	points  []Point
}

// New computes domains, scales and point positions for records.
func New(records []model.RaceRecord, cfg Config) (*Plot, error) {
	d, err := domains.Compute(records)
	if err != nil {
		return nil, err
	}

	p := &Plot{
		cfg:     cfg,
		domains: d,
		x:       scale.NewTime(d.X, cfg.Padding, cfg.Width-cfg.Padding),
		y:       scale.NewDuration(d.Y, cfg.Height-cfg.Padding, cfg.Padding),
	}

	p.points = make([]Point, len(records))
	for i, r := range records {
		// already validated by domains.Compute
		t, _ := racetime.Normalize(r.Time)
		p.points[i] = Point{
			Index:  i,
			X:      p.x.Map(domains.YearMarker(r.Year)),
			Y:      p.y.Map(t),
			Radius: cfg.Radius,
			Color:  palette.ColorFor(r),
			Time:   t,
			Record: r,
		}
	}

	p.xAxis = Axis{
		ID:          XAxisID,
		Orientation: Bottom,
		Offset:      cfg.Height - cfg.Padding,
		From:        cfg.Padding,
		To:          cfg.Width - cfg.Padding,
	}
	for _, tick := range p.x.YearTicks(p.x.YearStep(cfg.Ticks)) {
		p.xAxis.Ticks = append(p.xAxis.Ticks, Tick{Pos: p.x.Map(tick), Label: fmt.Sprint(tick.Year())})
	}

	p.yAxis = Axis{
		ID:          YAxisID,
		Orientation: Left,
		Offset:      cfg.Padding,
		From:        cfg.Height - cfg.Padding,
		To:          cfg.Padding,
	}
	for _, tick := range p.y.Ticks(p.y.Step(cfg.Ticks)) {
		p.yAxis.Ticks = append(p.yAxis.Ticks, Tick{Pos: p.y.Map(tick), Label: tick.String()})
	}

	p.legend = Legend{
		ID:        LegendID,
		X:         cfg.Width - cfg.Padding,
		Y:         cfg.Height / 2,
		RowHeight: legendRowHeight,
		Entries:   palette.Legend(),
	}
	p.caption = Label{X: 10, Y: 40, Text: YAxisCaption, FontSize: captionFontSize}

	return p, nil
}

func (p *Plot) Config() Config {
	return p.cfg
}

func (p *Plot) Domains() domains.Domains {
	return p.domains
}

func (p *Plot) Len() int {
	return len(p.points)
}

func (p *Plot) Point(i int) (Point, bool) {
	if i < 0 || i >= len(p.points) {
		return Point{}, false
	}
	return p.points[i], true
}

// Points returns a copy of the points in dataset order.
func (p *Plot) Points() []Point {
	out := make([]Point, len(p.points))
	copy(out, p.points)
	return out
}

// Draw renders the canvas, both axes, the caption, the legend and every point.
func (p *Plot) Draw(s Surface) error {
	if err := s.CreateCanvas(p.cfg.Width, p.cfg.Height); err != nil {
		return errors.Wrap(err, "creating canvas")
	}
	for _, a := range []Axis{p.xAxis, p.yAxis} {
		if err := s.DrawAxis(a); err != nil {
			return errors.Wrapf(err, "drawing %s", a.ID)
		}
	}
	if err := s.DrawLabel(p.caption); err != nil {
		return errors.Wrap(err, "drawing caption")
	}
	if err := s.DrawLegend(p.legend); err != nil {
		return errors.Wrap(err, "drawing legend")
	}
	for _, pt := range p.points {
		if err := s.DrawPoint(pt); err != nil {
			return errors.Wrapf(err, "drawing point %d", pt.Index)
		}
	}
	return nil
}
