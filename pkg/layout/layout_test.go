package layout_test

import (
	"bytes"
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/layout"
	"dopingscatter/pkg/model"
	"dopingscatter/pkg/palette"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func plot(t *testing.T) *chart.Plot {
	t.Helper()
	p, err := chart.New([]model.RaceRecord{
		{Time: "36:50", Name: "Marco Pantani", Year: 1995, Nationality: "ITA", Doping: "Alleged drug use"},
		{Time: "38:14", Name: "Carlos Sastre", Year: 2008, Nationality: "ESP"},
		{Time: "39:23", Name: "Thibaut Pinot", Year: 2015, Nationality: "FRA"},
	}, chart.DefaultConfig())
	require.NoError(t, err)
	return p
}

func TestBuildChartPNG(t *testing.T) {
	p := plot(t)

	data, err := layout.BuildChartPNG(p)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 900, img.Bounds().Dx())
	require.Equal(t, 600, img.Bounds().Dy())

	r, g, b, _ := img.At(1, 1).RGBA()
	require.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})

	for _, pt := range p.Points() {
		got := color.RGBAModel.Convert(img.At(int(pt.X), int(pt.Y))).(color.RGBA)
		require.Equal(t, pt.Color, got, "point %d", pt.Index)
	}
}

func TestBuildChartSVG(t *testing.T) {
	data, err := layout.BuildChartSVG(plot(t))
	require.NoError(t, err)

	doc := string(data)
	require.True(t, strings.HasPrefix(doc, "<?xml"))
	require.Contains(t, doc, `width="900" height="600"`)
	require.Equal(t, 1, strings.Count(doc, "<svg "))

	require.Contains(t, doc, ">"+chart.YAxisCaption+"</text>")
	require.Contains(t, doc, ">"+palette.LabelDoping+"</text>")
	require.Contains(t, doc, ">"+palette.LabelClean+"</text>")
	require.Contains(t, doc, ">1996</text>")
	require.Contains(t, doc, `font-family="sans-serif"`)
	require.NotContains(t, doc, `d=""`)
}
