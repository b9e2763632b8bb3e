package images

import (
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/image/draw"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var monoPalette = color.Palette{color.Black, color.White}

// Load decodes an event image and fills the whole canvas with it
func Load(fs afero.Fs, filename string, bounds image.Rectangle) (*image1bit.VerticalLSB, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", filename)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s", filename)
	}

	return Dither(Fit(img, bounds.Dx(), bounds.Dy())), nil
}

// Fit scales img to cover width x height, keeping its aspect ratio, and crops the overflow
// around the center.
func Fit(img image.Image, width int, height int) *image.NRGBA {
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
}

// Dither reduces a picture to black and white with Floyd-Steinberg error diffusion
func Dither(img image.Image) *image1bit.VerticalLSB {
	paletted := image.NewPaletted(img.Bounds(), monoPalette)
	draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), img, img.Bounds().Min)
	return ToMono(paletted)
}

// ToMono thresholds img into the display's 1-bit model. Light pixels are On.
func ToMono(img image.Image) *image1bit.VerticalLSB {
	mono := image1bit.NewVerticalLSB(img.Bounds())
	draw.Draw(mono, mono.Bounds(), img, img.Bounds().Min, draw.Src)
	return mono
}
