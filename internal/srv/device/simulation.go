package device

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/image/draw"
	"image"
	"image/color"
	"path/filepath"
)

const simulationFilename = "current.png"

// Mirror receives every frame the simulation display writes, like a desktop window
type Mirror interface {
	Show(img image.Image)
	Close()
}

// SimulationDisplay stands in for the panel: every frame is written to a png file
// and handed to the mirrors
type SimulationDisplay struct {
	fs         afero.Fs
	folder     string
	bounds     image.Rectangle
	frameCount int
	asleep     bool
	mirrors    []Mirror
}

func NewSimulationDisplay(fs afero.Fs, folder string, mirrors ...Mirror) *SimulationDisplay {
	return &SimulationDisplay{
		fs:      fs,
		folder:  folder,
		bounds:  image.Rect(0, 0, DisplayWidth, DisplayHeight),
		mirrors: mirrors,
	}
}

func (d *SimulationDisplay) Filename() string {
	return filepath.Join(d.folder, simulationFilename)
}

func (d *SimulationDisplay) Bounds() image.Rectangle {
	return d.bounds
}

func (d *SimulationDisplay) Init() error {
	logrus.Infof("Start simulation display in %s", d.folder)
	if err := d.fs.MkdirAll(d.folder, 0770); err != nil {
		return errors.Wrap(err, "unable to create simulation folder")
	}
	d.asleep = false
	return nil
}

func (d *SimulationDisplay) Clear() error {
	blank := image.NewGray(d.bounds)
	draw.Draw(blank, blank.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return d.write(blank)
}

func (d *SimulationDisplay) Show(img image.Image) error {
	d.frameCount++
	logrus.Debugf("Simulation frame #%d", d.frameCount)
	return d.write(img)
}

func (d *SimulationDisplay) write(img image.Image) error {
	if d.asleep {
		return errors.New("display is asleep")
	}
	if err := WritePng(d.fs, d.Filename(), img); err != nil {
		return err
	}
	for _, mirror := range d.mirrors {
		mirror.Show(img)
	}
	return nil
}

func (d *SimulationDisplay) Sleep() error {
	logrus.Infof("Simulation display goes to sleep")
	d.asleep = true
	return nil
}

func (d *SimulationDisplay) Close() error {
	for _, mirror := range d.mirrors {
		mirror.Close()
	}
	return nil
}

func (d *SimulationDisplay) FrameCount() int {
	return d.frameCount
}
