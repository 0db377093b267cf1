package layout

import (
	"bytes"
	"dopingscatter/pkg/chart"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"
	"sync"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/llgcode/draw2d/draw2dsvg"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	tickSize     = 6
	tickFontSize = 10
	legendSwatch = 15
)

var (
	mu = sync.Mutex{}

	background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ink        = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

type anchor int

const (
	anchorStart anchor = iota
	anchorMiddle
	anchorEnd
)

func (a anchor) shift(width float64) float64 {
	switch a {
	case anchorMiddle:
		return width / 2
	case anchorEnd:
		return width
	}
	return 0
}

type textWriter func(text string, x, y, size float64, c color.Color, a anchor)

// painter draws the plot primitives on any draw2d context. Text goes
// through write because raster and vector outputs render glyphs differently.
type painter struct {
	gc    draw2d.GraphicContext
	write textWriter
}

func (p *painter) fillBackground(width, height float64) {
	p.gc.Save()
	defer p.gc.Restore()
	p.gc.SetFillColor(background)
	draw2dkit.Rectangle(p.gc, 0, 0, width, height)
	p.gc.Fill()
}

func (p *painter) DrawAxis(a chart.Axis) error {
	p.gc.Save()
	p.gc.SetStrokeColor(ink)
	p.gc.SetLineWidth(1)
	p.gc.BeginPath()
	switch a.Orientation {
	case chart.Bottom:
		p.gc.MoveTo(a.From, a.Offset)
		p.gc.LineTo(a.To, a.Offset)
		for _, t := range a.Ticks {
			p.gc.MoveTo(t.Pos, a.Offset)
			p.gc.LineTo(t.Pos, a.Offset+tickSize)
		}
	case chart.Left:
		p.gc.MoveTo(a.Offset, a.From)
		p.gc.LineTo(a.Offset, a.To)
		for _, t := range a.Ticks {
			p.gc.MoveTo(a.Offset, t.Pos)
			p.gc.LineTo(a.Offset-tickSize, t.Pos)
		}
	default:
		p.gc.Restore()
		return fmt.Errorf("unknown axis orientation %d", a.Orientation)
	}
	p.gc.Stroke()
	p.gc.Restore()

	for _, t := range a.Ticks {
		if a.Orientation == chart.Bottom {
			p.write(t.Label, t.Pos, a.Offset+tickSize+12, tickFontSize, ink, anchorMiddle)
		} else {
			p.write(t.Label, a.Offset-tickSize-3, t.Pos+4, tickFontSize, ink, anchorEnd)
		}
	}
	return nil
}

func (p *painter) DrawLabel(l chart.Label) error {
	p.write(l.Text, l.X, l.Y, l.FontSize, ink, anchorStart)
	return nil
}

func (p *painter) DrawLegend(l chart.Legend) error {
	for i, e := range l.Entries {
		y := l.Y + float64(i)*l.RowHeight
		p.gc.Save()
		p.gc.SetFillColor(e.Color)
		draw2dkit.Rectangle(p.gc, l.X+5, y, l.X+5+legendSwatch, y+legendSwatch)
		p.gc.Fill()
		p.gc.Restore()
		p.write(e.Label, l.X, y+12, 12.8, ink, anchorEnd)
	}
	return nil
}

func (p *painter) DrawPoint(pt chart.Point) error {
	p.gc.Save()
	defer p.gc.Restore()
	p.gc.SetFillColor(pt.Color)
	draw2dkit.Circle(p.gc, pt.X, pt.Y, pt.Radius)
	p.gc.Fill()
	return nil
}

type pngSurface struct {
	painter
	dest *image.RGBA
}

func (s *pngSurface) CreateCanvas(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas size %.0fx%.0f", width, height)
	}
	s.dest = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.Draw(s.dest, s.dest.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	s.gc = draw2dimg.NewGraphicContext(s.dest)
	s.write = s.drawText
	return nil
}

// drawText uses the fixed 7x13 face, size is ignored.
func (s *pngSurface) drawText(text string, x, y, _ float64, c color.Color, a anchor) {
	d := &font.Drawer{Dst: s.dest, Src: image.NewUniform(c), Face: basicfont.Face7x13}
	w := float64(d.MeasureString(text).Ceil())
	d.Dot = fixed.P(int(math.Round(x-a.shift(w))), int(math.Round(y)))
	d.DrawString(text)
}

type svgSurface struct {
	painter
	dest *draw2dsvg.Svg
}

func newSvgSurface() *svgSurface {
	dest := draw2dsvg.NewSvg()
	dest.FontMode = draw2dsvg.SysFontMode
	gc := draw2dsvg.NewGraphicContext(dest)
	gc.FontCache = fonts
	gc.SetFontData(textFont)

	s := &svgSurface{dest: dest}
	s.gc = gc
	s.write = s.drawText
	return s
}

func (s *svgSurface) CreateCanvas(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas size %.0fx%.0f", width, height)
	}
	s.dest.Width = fmt.Sprintf("%.0f", width)
	s.dest.Height = fmt.Sprintf("%.0f", height)
	s.fillBackground(width, height)
	return nil
}

func (s *svgSurface) drawText(text string, x, y, size float64, c color.Color, a anchor) {
	// text elements are written as inner xml
	var escaped strings.Builder
	_ = xml.EscapeText(&escaped, []byte(text))

	s.gc.Save()
	s.gc.SetFillColor(c)
	s.gc.SetFontSize(size)
	left, _, right, _ := s.gc.GetStringBounds(text)
	s.gc.FillStringAt(escaped.String(), x-a.shift(right-left), y)
	s.gc.Restore()
}

// BuildChartPNG rasterizes the plot.
func BuildChartPNG(p *chart.Plot) ([]byte, error) {
	mu.Lock()
	defer mu.Unlock()

	s := &pngSurface{}
	if err := p.Draw(s); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.dest); err != nil {
		return nil, errors.Wrap(err, "encoding png")
	}
	return buf.Bytes(), nil
}

// BuildChartSVG renders the plot as a static svg document.
func BuildChartSVG(p *chart.Plot) ([]byte, error) {
	mu.Lock()
	defer mu.Unlock()

	s := newSvgSurface()
	if err := p.Draw(s); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(s.dest); err != nil {
		return nil, errors.Wrap(err, "encoding svg")
	}
	return buf.Bytes(), nil
}
