package render

import (
	"github.com/hajimehoshi/bitmapfont/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

const (
	largeSize  = 60
	mediumSize = 40
	dpi        = 72
)

// Faces holds the two text sizes of the sign: Large for the class name,
// Medium for everything else.
type Faces struct {
	Large   font.Face
	Medium  font.Face
	Default bool
}

// DefaultFaces uses the embedded bitmap font for every size
func DefaultFaces() *Faces {
	return &Faces{
		Large:   bitmapfont.Face,
		Medium:  bitmapfont.Face,
		Default: true,
	}
}

// LoadFaces never fails: an unusable font file gives the default faces
func LoadFaces(fs afero.Fs, filename string) *Faces {
	faces, err := loadFaces(fs, filename)
	if err != nil {
		logrus.Warnf("Falling back to default font: %v", err)
		return DefaultFaces()
	}
	return faces
}

func loadFaces(fs afero.Fs, filename string) (*Faces, error) {
	raw, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read font file")
	}

	parsed, err := opentype.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse font %s", filename)
	}

	large, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: largeSize, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create large face")
	}
	medium, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: mediumSize, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create medium face")
	}

	return &Faces{Large: large, Medium: medium}, nil
}
