package render

import (
	"github.com/fogleman/gg"
	"github.com/jypelle/roomsign/internal/images"
	"github.com/jypelle/roomsign/internal/schedule"
	"github.com/spf13/afero"
	"image"
	"image/color"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const FallbackText = "No classes or events right now"

type Renderer struct {
	fs           afero.Fs
	fontFilename string
	header       string
	bounds       image.Rectangle
}

func NewRenderer(fs afero.Fs, fontFilename string, header string, bounds image.Rectangle) *Renderer {
	return &Renderer{
		fs:           fs,
		fontFilename: fontFilename,
		header:       header,
		bounds:       bounds,
	}
}

func (r *Renderer) Bounds() image.Rectangle {
	return r.bounds
}

// ClassLayout loads the fonts and lays out slot on the canvas
func (r *Renderer) ClassLayout(slot schedule.Slot) []Line {
	return Layout(slot, r.header, LoadFaces(r.fs, r.fontFilename), r.bounds.Dx())
}

func (r *Renderer) ClassInfo(slot schedule.Slot) *image1bit.VerticalLSB {
	return r.draw(r.ClassLayout(slot))
}

func (r *Renderer) Fallback() *image1bit.VerticalLSB {
	return r.draw(FallbackLayout(FallbackText, LoadFaces(r.fs, r.fontFilename), r.bounds.Dy()))
}

func (r *Renderer) draw(lines []Line) *image1bit.VerticalLSB {
	dc := gg.NewContext(r.bounds.Dx(), r.bounds.Dy())
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(color.Black)
	for _, line := range lines {
		dc.SetFontFace(line.Face)
		dc.DrawString(line.Text, float64(line.X), float64(line.Baseline()))
	}

	return images.ToMono(dc.Image())
}
