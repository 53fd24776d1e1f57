package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"time"

	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/field"
	"github.com/san-kum/runviz/internal/viz"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FrameDelay is the per-frame GIF delay in hundredths of a second. It
// matches the autoplay period.
var FrameDelay = int(field.TickPeriod / (10 * time.Millisecond))

// Palette indices.
const (
	inkBackground = iota
	inkField
	inkText
)

func palette() color.Palette {
	return color.Palette{
		rgb(background),
		rgb(string(viz.CurrentTheme.Field)),
		rgb(string(viz.CurrentTheme.Text)),
	}
}

func rgb(hex string) color.RGBA {
	r, g, b := viz.ParseHex(hex)
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// imageSurface draws onto a paletted image. Lines are clipped to the
// image and rasterised with field.RasterLine.
type imageSurface struct {
	img *image.Paletted
}

func (s *imageSurface) Clear() {
	for i := range s.img.Pix {
		s.img.Pix[i] = inkBackground
	}
}

func (s *imageSurface) Line(x0, y0, x1, y1 float64) {
	b := s.img.Bounds()
	field.RasterLine(x0, y0, x1, y1, float64(b.Dx()), float64(b.Dy()), func(x, y int) {
		s.img.SetColorIndex(x, y, inkField)
	})
}

func (s *imageSurface) Label(x, y float64, text string) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(s.img.Palette[inkText]),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(text)
}

// RenderFrame draws one sample into a new paletted image.
func RenderFrame(sample *artifact.VectorFieldSample, width, height int) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, width, height), palette())
	field.Render(&imageSurface{img: img}, sample, float64(width), float64(height))
	return img
}

// FieldGIF writes an animated GIF with one frame per sample that loops
// forever.
func FieldGIF(w io.Writer, set *artifact.VectorFieldSet, width, height int) error {
	if set.Len() == 0 {
		return fmt.Errorf("field gif: %w", artifact.ErrEmpty)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("field gif: invalid size %dx%d", width, height)
	}

	anim := &gif.GIF{}
	for i := 0; i < set.Len(); i++ {
		anim.Image = append(anim.Image, RenderFrame(set.Sample(i), width, height))
		anim.Delay = append(anim.Delay, FrameDelay)
	}
	return gif.EncodeAll(w, anim)
}
