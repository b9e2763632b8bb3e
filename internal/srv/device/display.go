package device

import (
	"bytes"
	"github.com/jypelle/roomsign/internal/srv/config"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"image"
	"image/png"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	DisplayWidth  = 800
	DisplayHeight = 480
)

// Display is the e-paper panel. Init can be called again to wake it up after Sleep.
type Display interface {
	Init() error
	Clear() error
	Show(img image.Image) error
	Sleep() error
	Close() error
	Bounds() image.Rectangle
}

// NewDisplay opens the panel, or the simulation display in simulation mode. Mirrors only
// apply to the simulation display.
func NewDisplay(serverConfig *config.ServerConfig, mirrors ...Mirror) (Display, error) {
	if serverConfig.SimulationMode {
		return NewSimulationDisplay(serverConfig.Fs, serverConfig.GetCompleteSimulationFolder(), mirrors...), nil
	}
	return NewEpd7in5V2(serverConfig.EpdParam)
}

// Pack converts img into the panel memory layout: rows top to bottom, 8 pixels per byte,
// most significant bit first, 1 meaning white.
func Pack(img image.Image) []byte {
	b := img.Bounds()
	stride := (b.Dx() + 7) / 8
	buf := make([]byte, stride*b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := (y - b.Min.Y) * stride
		for x := b.Min.X; x < b.Max.X; x++ {
			if image1bit.BitModel.Convert(img.At(x, y)) == image1bit.On {
				col := x - b.Min.X
				buf[row+col/8] |= 0x80 >> uint(col%8)
			}
		}
	}
	return buf
}

func WritePng(fs afero.Fs, filename string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errors.Wrap(err, "unable to encode png")
	}
	if err := afero.WriteFile(fs, filename, buf.Bytes(), 0660); err != nil {
		return errors.Wrapf(err, "unable to write %s", filename)
	}
	return nil
}
