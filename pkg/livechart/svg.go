package livechart

import (
	"bytes"
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/palette"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"
)

const tickSize = 6

func px(v float64) int {
	return int(math.Round(v))
}

// RenderSVG writes the plot as an interactive svg document. Every dot
// carries its index so the page can ask for its tooltip.
func RenderSVG(p *chart.Plot) ([]byte, error) {
	var buf bytes.Buffer
	s := &svgSurface{canvas: svg.New(&buf)}
	if err := p.Draw(s); err != nil {
		return nil, err
	}
	s.end()
	return buf.Bytes(), nil
}

type svgSurface struct {
	canvas *svg.SVG
	open   bool
}

func (s *svgSurface) CreateCanvas(width, height float64) error {
	if s.open {
		return fmt.Errorf("canvas already created")
	}
	s.canvas.Start(px(width), px(height), `id="chart"`)
	s.canvas.Rect(0, 0, px(width), px(height), `fill="white"`)
	s.open = true
	return nil
}

func (s *svgSurface) DrawAxis(a chart.Axis) error {
	s.canvas.Gid(a.ID)
	defer s.canvas.Gend()

	switch a.Orientation {
	case chart.Bottom:
		s.canvas.Line(px(a.From), px(a.Offset), px(a.To), px(a.Offset), `stroke="black"`)
		for _, t := range a.Ticks {
			s.canvas.Line(px(t.Pos), px(a.Offset), px(t.Pos), px(a.Offset)+tickSize, `stroke="black"`)
			s.canvas.Text(px(t.Pos), px(a.Offset)+tickSize+12, t.Label, `class="tick"`, `text-anchor="middle"`, `font-size="10"`)
		}
	case chart.Left:
		s.canvas.Line(px(a.Offset), px(a.From), px(a.Offset), px(a.To), `stroke="black"`)
		for _, t := range a.Ticks {
			s.canvas.Line(px(a.Offset), px(t.Pos), px(a.Offset)-tickSize, px(t.Pos), `stroke="black"`)
			s.canvas.Text(px(a.Offset)-tickSize-3, px(t.Pos)+4, t.Label, `class="tick"`, `text-anchor="end"`, `font-size="10"`)
		}
	default:
		return fmt.Errorf("unknown axis orientation %d", a.Orientation)
	}
	return nil
}

func (s *svgSurface) DrawLabel(l chart.Label) error {
	s.canvas.Text(px(l.X), px(l.Y), l.Text, `class="caption"`, fmt.Sprintf("font-size:%.1fpx", l.FontSize))
	return nil
}

// DrawLegend nests one g.label per entry, each translated down one row.
func (s *svgSurface) DrawLegend(l chart.Legend) error {
	s.canvas.Group(fmt.Sprintf(`id="%s"`, l.ID), fmt.Sprintf(`transform="translate(0,%d)"`, px(l.Y)))
	for i, e := range l.Entries {
		s.canvas.Group(`class="label"`, fmt.Sprintf(`transform="translate(0,%d)"`, px(float64(i)*l.RowHeight)))
		s.canvas.Rect(px(l.X)+5, 0, 15, 15, fmt.Sprintf(`fill="%s"`, palette.Hex(e.Color)))
		s.canvas.Text(px(l.X), 12, e.Label, `text-anchor="end"`, `font-size=".8em"`)
		s.canvas.Gend()
	}
	s.canvas.Gend()
	return nil
}

func (s *svgSurface) DrawPoint(pt chart.Point) error {
	s.canvas.Circle(px(pt.X), px(pt.Y), px(pt.Radius),
		`class="dot"`,
		fmt.Sprintf(`data-index="%d"`, pt.Index),
		fmt.Sprintf(`data-xvalue="%s"`, pt.XValue()),
		fmt.Sprintf(`data-yvalue="%s"`, pt.YValue()),
		fmt.Sprintf(`fill="%s"`, palette.Hex(pt.Color)),
	)
	return nil
}

func (s *svgSurface) end() {
	if s.open {
		s.canvas.End()
		s.open = false
	}
}
