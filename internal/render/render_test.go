package render

import (
	"bytes"
	"github.com/jypelle/roomsign/internal/schedule"
	"github.com/spf13/afero"
	"golang.org/x/image/font/gofont/goregular"
	"image"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"strings"
	"testing"
)

var canvas = image.Rect(0, 0, 800, 480)

var bio201 = schedule.Slot{
	Room:      "101",
	Day:       "Monday",
	StartTime: "09:00",
	EndTime:   "10:00",
	Class:     "BIO201",
	Title:     "Genetics",
	Teacher:   "Dr. Smith",
}

func fontFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/fonts/regular.ttf", goregular.TTF, 0660); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/fonts/broken.ttf", []byte("not a font"), 0660); err != nil {
		t.Fatal(err)
	}
	return fs
}

// inkRows counts the rows of [from, to) holding at least one black pixel
func inkRows(img *image1bit.VerticalLSB, from, to int) int {
	rows := 0
	for y := from; y < to; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			if img.At(x, y) == image1bit.Off {
				rows++
				break
			}
		}
	}
	return rows
}

func TestLoadFaces(t *testing.T) {
	fs := fontFs(t)

	tests := []struct {
		name            string
		filename        string
		expectedDefault bool
	}{
		{"Valid font", "/fonts/regular.ttf", false},
		{"Missing font", "/fonts/missing.ttf", true},
		{"Broken font", "/fonts/broken.ttf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faces := LoadFaces(fs, tt.filename)
			if faces.Default != tt.expectedDefault {
				t.Errorf("Default = %v, expected %v", faces.Default, tt.expectedDefault)
			}
			if faces.Large == nil || faces.Medium == nil {
				t.Fatal("LoadFaces returned a nil face")
			}
		})
	}

	faces := LoadFaces(fs, "/fonts/regular.ttf")
	if faces.Large.Metrics().Height <= faces.Medium.Metrics().Height {
		t.Errorf("large face should be taller than medium face")
	}
}

func TestLayout(t *testing.T) {
	faces := LoadFaces(fontFs(t), "/fonts/regular.ttf")
	lines := Layout(bio201, "University of Portland Biology", faces, canvas.Dx())

	expectedTexts := []string{
		"University of Portland Biology",
		"BIO201",
		"Title: Genetics",
		"Instructor: Dr. Smith",
		"Time: 09:00 - 10:00",
	}
	if len(lines) != len(expectedTexts) {
		t.Fatalf("got %d lines, expected %d", len(lines), len(expectedTexts))
	}
	for i, text := range expectedTexts {
		if lines[i].Text != text {
			t.Errorf("line %d = %q, expected %q", i, lines[i].Text, text)
		}
	}

	header := lines[0]
	if header.Y != 20 {
		t.Errorf("header Y = %d, expected 20", header.Y)
	}
	if header.X != (canvas.Dx()-header.Width)/2 {
		t.Errorf("header X = %d, not centered for width %d", header.X, header.Width)
	}
	if lines[1].Face != faces.Large {
		t.Errorf("class name should use the large face")
	}
	if lines[1].Y != header.Y+header.Height+20 {
		t.Errorf("class Y = %d, expected header bottom + 20", lines[1].Y)
	}
	for i := 1; i < len(lines); i++ {
		if lines[i].X != 50 {
			t.Errorf("line %d X = %d, expected left margin 50", i, lines[i].X)
		}
		if i > 1 {
			if lines[i].Face != faces.Medium {
				t.Errorf("line %d should use the medium face", i)
			}
			if lines[i].Y != lines[i-1].Y+lines[i-1].Height+10 {
				t.Errorf("line %d Y = %d, expected previous bottom + 10", i, lines[i].Y)
			}
		}
	}
	if bottom := lines[4].Y + lines[4].Height; bottom > canvas.Dy() {
		t.Errorf("layout overflows the canvas: bottom at %d", bottom)
	}
}

func TestLayoutClampsWideHeader(t *testing.T) {
	lines := Layout(bio201, strings.Repeat("W", 200), DefaultFaces(), canvas.Dx())
	if lines[0].X != 0 {
		t.Errorf("header X = %d, expected 0 for an oversized header", lines[0].X)
	}
}

func TestClassInfoIsIdempotent(t *testing.T) {
	renderer := NewRenderer(fontFs(t), "/fonts/regular.ttf", "University of Portland Biology", canvas)

	first := renderer.ClassLayout(bio201)
	second := renderer.ClassLayout(bio201)
	if len(first) != len(second) {
		t.Fatalf("layouts differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Text != b.Text || a.X != b.X || a.Y != b.Y || a.Width != b.Width || a.Height != b.Height {
			t.Errorf("line %d moved: %+v vs %+v", i, a, b)
		}
	}

	img1 := renderer.ClassInfo(bio201)
	img2 := renderer.ClassInfo(bio201)
	if img1.Bounds() != canvas || img2.Bounds() != canvas {
		t.Fatalf("bounds = %v / %v, expected %v", img1.Bounds(), img2.Bounds(), canvas)
	}
	if !bytes.Equal(img1.Pix, img2.Pix) {
		t.Errorf("two renderings of the same slot differ")
	}
}

func TestClassInfoDrawsText(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"Truetype font", "/fonts/regular.ttf"},
		{"Default font", "/fonts/missing.ttf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewRenderer(fontFs(t), tt.filename, "University of Portland Biology", canvas)
			lines := renderer.ClassLayout(bio201)
			img := renderer.ClassInfo(bio201)

			for i, line := range lines {
				if inkRows(img, line.Y, line.Y+line.Height) == 0 {
					t.Errorf("line %d (%q) left no ink", i, line.Text)
				}
			}
			last := lines[len(lines)-1]
			if n := inkRows(img, last.Y+last.Height, canvas.Max.Y); n != 0 {
				t.Errorf("found %d inked rows below the layout", n)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	renderer := NewRenderer(afero.NewMemMapFs(), "/fonts/missing.ttf", "Header", canvas)
	img := renderer.Fallback()

	if img.Bounds() != canvas {
		t.Fatalf("bounds = %v, expected %v", img.Bounds(), canvas)
	}
	if n := inkRows(img, 0, canvas.Dy()/2); n != 0 {
		t.Errorf("found %d inked rows above the fallback line", n)
	}
	if n := inkRows(img, canvas.Dy()/2, canvas.Dy()); n == 0 {
		t.Errorf("fallback text left no ink")
	}
}
