package images

import (
	"bytes"
	"github.com/spf13/afero"
	"golang.org/x/image/draw"
	"image"
	"image/color"
	"image/png"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"testing"
)

var canvas = image.Rect(0, 0, 800, 480)

// halves draws a picture black on the left and white on the right
func halves(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, width/2, height), image.Black, image.Point{}, draw.Src)
	return img
}

func writePng(t *testing.T, fs afero.Fs, filename string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, filename, buf.Bytes(), 0660); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFillsCanvas(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"Smaller and wider", 400, 100},
		{"Larger and taller", 1000, 2000},
		{"Same ratio", 400, 240},
		{"Exact size", 800, 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writePng(t, fs, "/events/poster.png", halves(tt.width, tt.height))

			mono, err := Load(fs, "/events/poster.png", canvas)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if mono.Bounds() != canvas {
				t.Errorf("bounds = %v, expected %v", mono.Bounds(), canvas)
			}
		})
	}
}

func TestLoadCropsOverflowAroundCenter(t *testing.T) {
	fs := afero.NewMemMapFs()
	// twice as wide as the canvas: only the middle 800 columns survive
	writePng(t, fs, "/poster.png", halves(1600, 480))

	mono, err := Load(fs, "/poster.png", canvas)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if mono.At(100, 240) != image1bit.Off {
		t.Errorf("left side of the crop should be black")
	}
	if mono.At(700, 240) != image1bit.On {
		t.Errorf("right side of the crop should be white")
	}
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/broken.png", []byte("not a png"), 0660); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(fs, "/missing.png", canvas); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := Load(fs, "/broken.png", canvas); err == nil {
		t.Error("expected an error for an undecodable file")
	}
}

func TestToMonoThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 0x40})
	img.SetGray(2, 0, color.Gray{Y: 0xc0})
	img.SetGray(3, 0, color.Gray{Y: 0xff})

	mono := ToMono(img)
	expected := []image1bit.Bit{image1bit.Off, image1bit.Off, image1bit.On, image1bit.On}
	for x, bit := range expected {
		if mono.At(x, 0) != bit {
			t.Errorf("pixel %d = %v, expected %v", x, mono.At(x, 0), bit)
		}
	}
}

func TestDitherKeepsPureColors(t *testing.T) {
	mono := Dither(halves(16, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 16; x++ {
			expected := image1bit.On
			if x < 8 {
				expected = image1bit.Off
			}
			if mono.At(x, y) != expected {
				t.Fatalf("pixel (%d,%d) = %v, expected %v", x, y, mono.At(x, y), expected)
			}
		}
	}
}
