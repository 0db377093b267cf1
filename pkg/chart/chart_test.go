package chart_test

import (
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/domains"
	"dopingscatter/pkg/model"
	"dopingscatter/pkg/palette"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var riders = []model.RaceRecord{
	{Time: "36:50", Place: 1, Seconds: 2210, Name: "Marco Pantani", Year: 1995, Nationality: "ITA", Doping: "Alleged drug use during 1995 due to high hematocrit levels"},
	{Time: "37:36", Place: 3, Seconds: 2256, Name: "Jan Ullrich", Year: 1997, Nationality: "GER", Doping: "Confessed later in his career to doping"},
	{Time: "39:22", Place: 35, Seconds: 2362, Name: "Nairo Quintana", Year: 2015, Nationality: "COL"},
}

type recordingSurface struct {
	calls  []string
	points []chart.Point
	axes   []chart.Axis
	legend chart.Legend
	failOn string
}

func (r *recordingSurface) record(call string) error {
	r.calls = append(r.calls, call)
	if call == r.failOn {
		return fmt.Errorf("boom")
	}
	return nil
}

func (r *recordingSurface) CreateCanvas(width, height float64) error {
	return r.record(fmt.Sprintf("canvas %.0fx%.0f", width, height))
}

func (r *recordingSurface) DrawAxis(a chart.Axis) error {
	r.axes = append(r.axes, a)
	return r.record("axis " + a.ID)
}

func (r *recordingSurface) DrawLabel(l chart.Label) error {
	return r.record("label " + l.Text)
}

func (r *recordingSurface) DrawLegend(l chart.Legend) error {
	r.legend = l
	return r.record("legend")
}

func (r *recordingSurface) DrawPoint(p chart.Point) error {
	r.points = append(r.points, p)
	return r.record(fmt.Sprintf("point %d", p.Index))
}

func TestNew_scalesPoints(t *testing.T) {
	cfg := chart.DefaultConfig()
	p, err := chart.New(riders, cfg)
	require.NoError(t, err)

	require.Equal(t, 3, p.Len())
	require.Equal(t, domains.YearMarker(1994), p.Domains().X.Min)
	require.Equal(t, domains.YearMarker(2016), p.Domains().X.Max)

	fastest, ok := p.Point(0)
	require.True(t, ok)
	slowest, ok := p.Point(2)
	require.True(t, ok)

	// fastest time sits on the top padding, slowest on the bottom one
	assert.InDelta(t, cfg.Padding, fastest.Y, 1e-9)
	assert.InDelta(t, cfg.Height-cfg.Padding, slowest.Y, 1e-9)
	assert.Less(t, fastest.X, slowest.X)
	assert.Equal(t, palette.Blue, fastest.Color)
	assert.Equal(t, palette.Orange, slowest.Color)
	assert.Equal(t, cfg.Radius, fastest.Radius)
}

func TestNew_emptyDataset(t *testing.T) {
	_, err := chart.New(nil, chart.DefaultConfig())

	require.ErrorIs(t, err, domains.ErrEmptyDataset)
}

func TestPoint_values(t *testing.T) {
	p, err := chart.New(riders, chart.DefaultConfig())
	require.NoError(t, err)

	pt, _ := p.Point(0)

	require.Equal(t, "1995", pt.XValue())
	require.Equal(t, "1970-01-01T00:36:50.000Z", pt.YValue())
}

func TestPoint_outOfRange(t *testing.T) {
	p, err := chart.New(riders, chart.DefaultConfig())
	require.NoError(t, err)

	_, ok := p.Point(-1)
	require.False(t, ok)
	_, ok = p.Point(3)
	require.False(t, ok)
}

func TestPlot_drawOrder(t *testing.T) {
	p, err := chart.New(riders, chart.DefaultConfig())
	require.NoError(t, err)
	s := &recordingSurface{}

	require.NoError(t, p.Draw(s))

	require.Equal(t, []string{
		"canvas 900x600",
		"axis x-axis",
		"axis y-axis",
		"label Time in Minutes",
		"legend",
		"point 0",
		"point 1",
		"point 2",
	}, s.calls)
	require.Equal(t, chart.Bottom, s.axes[0].Orientation)
	require.Equal(t, 550.0, s.axes[0].Offset)
	require.Equal(t, chart.Left, s.axes[1].Orientation)
	require.Equal(t, "37:00", s.axes[1].Ticks[0].Label)
	require.Equal(t, 850.0, s.legend.X)
	require.Equal(t, 300.0, s.legend.Y)
	require.Len(t, s.legend.Entries, 2)
}

func TestPlot_drawStopsOnSurfaceError(t *testing.T) {
	p, err := chart.New(riders, chart.DefaultConfig())
	require.NoError(t, err)
	s := &recordingSurface{failOn: "legend"}

	err = p.Draw(s)

	require.Error(t, err)
	require.ErrorContains(t, err, "drawing legend")
	require.Equal(t, "boom", errors.Cause(err).Error())
	require.Empty(t, s.points)
}

func TestPlot_singleRecord(t *testing.T) {
	p, err := chart.New(riders[:1], chart.DefaultConfig())
	require.NoError(t, err)

	pt, _ := p.Point(0)

	require.Equal(t, 300.0, pt.Y)
	require.NoError(t, p.Draw(&recordingSurface{}))
}

func TestPlot_pointsIsACopy(t *testing.T) {
	p, err := chart.New(riders, chart.DefaultConfig())
	require.NoError(t, err)

	pts := p.Points()
	pts[0].X = -1

	pt, _ := p.Point(0)
	require.NotEqual(t, -1.0, pt.X)
}

func TestNew_outlierKeepsAxesReadable(t *testing.T) {
	p, err := chart.New(append([]model.RaceRecord{{Time: "2000000:00", Name: "Slow Rider", Year: 1990}}, riders...), chart.DefaultConfig())
	require.NoError(t, err)
	s := &recordingSurface{}

	require.NoError(t, p.Draw(s))

	require.LessOrEqual(t, len(s.axes[0].Ticks), 20)
	require.LessOrEqual(t, len(s.axes[1].Ticks), 20)
	require.NotEmpty(t, s.axes[1].Ticks)
}
