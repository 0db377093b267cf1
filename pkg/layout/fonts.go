package layout

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d"
	"golang.org/x/image/font/gofont/goregular"
)

// textFont is the family written into svg text elements. Metrics come
// from Go Regular whatever the viewer substitutes.
var textFont = draw2d.FontData{Name: "sans-serif", Family: draw2d.FontFamilySans, Style: draw2d.FontStyleNormal}

// embeddedFonts serves Go Regular for every font request so draw2d never
// looks for font files on disk.
type embeddedFonts struct {
	once sync.Once
	font *truetype.Font
	err  error
}

var fonts = &embeddedFonts{}

func (f *embeddedFonts) Load(draw2d.FontData) (*truetype.Font, error) {
	f.once.Do(func() {
		f.font, f.err = truetype.Parse(goregular.TTF)
	})
	return f.font, f.err
}

// Store is a no-op, there is only one face.
func (f *embeddedFonts) Store(draw2d.FontData, *truetype.Font) {}
