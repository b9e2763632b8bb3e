package device

import (
	"github.com/jypelle/roomsign/internal/srv/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"image"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"sync"
	"time"
)

// Waveshare 7.5" V2 controller commands
const (
	cmdPanelSetting       = 0x00
	cmdPowerSetting       = 0x01
	cmdPowerOff           = 0x02
	cmdPowerOn            = 0x04
	cmdBoosterSoftStart   = 0x06
	cmdDeepSleep          = 0x07
	cmdOldFrame           = 0x10
	cmdDisplayRefresh     = 0x12
	cmdNewFrame           = 0x13
	cmdDualSpi            = 0x15
	cmdVcomDataInterval   = 0x50
	cmdTconSetting        = 0x60
	cmdResolutionSetting  = 0x61
	cmdGetStatus          = 0x71
	deepSleepCheckCode    = 0xA5
	defaultMaxTransferLen = 4096
)

// The busy line is driven by the panel, no pull resistor
const busyPull = gpio.Float

type Epd7in5V2 struct {
	lock sync.Mutex

	port    spi.PortCloser
	spiConn spi.Conn
	maxTx   int

	rst  gpio.PinIO
	dc   gpio.PinIO
	busy gpio.PinIO
	pwr  gpio.PinIO

	bounds image.Rectangle
}

func NewEpd7in5V2(param config.EpdParam) (*Epd7in5V2, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "unable to initialize periph host")
	}

	d := &Epd7in5V2{
		maxTx:  defaultMaxTransferLen,
		bounds: image.Rect(0, 0, DisplayWidth, DisplayHeight),
	}

	var err error
	if d.rst, err = pin(param.RstPin); err != nil {
		return nil, err
	}
	if d.dc, err = pin(param.DcPin); err != nil {
		return nil, err
	}
	if d.busy, err = pin(param.BusyPin); err != nil {
		return nil, err
	}
	// Older HATs have no power pin
	if param.PwrPin != "" {
		if d.pwr, err = pin(param.PwrPin); err != nil {
			return nil, err
		}
	}
	if err = d.busy.In(busyPull, gpio.NoEdge); err != nil {
		return nil, errors.Wrap(err, "unable to setup busy pin")
	}

	d.port, err = spireg.Open(param.SpiPort)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open spi port")
	}
	d.spiConn, err = d.port.Connect(physic.Frequency(param.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		d.port.Close()
		return nil, errors.Wrap(err, "unable to connect spi port")
	}
	if limits, ok := d.spiConn.(conn.Limits); ok && limits.MaxTxSize() > 0 {
		d.maxTx = limits.MaxTxSize()
	}

	return d, nil
}

func pin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("unable to find pin %s", name)
	}
	return p, nil
}

func (d *Epd7in5V2) Bounds() image.Rectangle {
	return d.bounds
}

func (d *Epd7in5V2) Init() error {
	logrus.Infof("Init e-paper display")
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.pwr != nil {
		if err := d.pwr.Out(gpio.High); err != nil {
			return errors.Wrap(err, "unable to power display")
		}
	}
	if err := d.reset(); err != nil {
		return err
	}

	if err := d.send(cmdPowerSetting, 0x07, 0x07, 0x3f, 0x3f); err != nil {
		return err
	}
	if err := d.send(cmdBoosterSoftStart, 0x17, 0x17, 0x28, 0x17); err != nil {
		return err
	}
	if err := d.send(cmdPowerOn); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)
	if err := d.waitIdle(); err != nil {
		return err
	}

	sequence := [][]byte{
		{cmdPanelSetting, 0x1f},
		{cmdResolutionSetting, byte(DisplayWidth >> 8), byte(DisplayWidth & 0xff), byte(DisplayHeight >> 8), byte(DisplayHeight & 0xff)},
		{cmdDualSpi, 0x00},
		{cmdVcomDataInterval, 0x10, 0x07},
		{cmdTconSetting, 0x22},
	}
	for _, step := range sequence {
		if err := d.send(step[0], step[1:]...); err != nil {
			return err
		}
	}
	return nil
}

func (d *Epd7in5V2) Clear() error {
	logrus.Debugf("Clear e-paper display")
	d.lock.Lock()
	defer d.lock.Unlock()

	size := DisplayWidth / 8 * DisplayHeight
	white := make([]byte, size)
	for i := range white {
		white[i] = 0xff
	}
	return d.refresh(white, make([]byte, size))
}

func (d *Epd7in5V2) Show(img image.Image) error {
	if img.Bounds().Dx() != DisplayWidth || img.Bounds().Dy() != DisplayHeight {
		return errors.Errorf("image size %v doesn't match display", img.Bounds().Size())
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	frame := Pack(img)
	inverted := make([]byte, len(frame))
	for i, b := range frame {
		inverted[i] = ^b
	}
	return d.refresh(frame, inverted)
}

func (d *Epd7in5V2) refresh(oldFrame []byte, newFrame []byte) error {
	if err := d.send(cmdOldFrame, oldFrame...); err != nil {
		return err
	}
	if err := d.send(cmdNewFrame, newFrame...); err != nil {
		return err
	}
	if err := d.send(cmdDisplayRefresh); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)
	return d.waitIdle()
}

func (d *Epd7in5V2) Sleep() error {
	logrus.Infof("Put e-paper display to sleep")
	d.lock.Lock()
	defer d.lock.Unlock()

	if err := d.send(cmdVcomDataInterval, 0xf7); err != nil {
		return err
	}
	if err := d.send(cmdPowerOff); err != nil {
		return err
	}
	if err := d.waitIdle(); err != nil {
		return err
	}
	if err := d.send(cmdDeepSleep, deepSleepCheckCode); err != nil {
		return err
	}
	time.Sleep(2 * time.Second)

	if d.pwr != nil {
		return d.pwr.Out(gpio.Low)
	}
	return nil
}

func (d *Epd7in5V2) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.port.Close()
}

func (d *Epd7in5V2) reset() error {
	for _, step := range []struct {
		level gpio.Level
		wait  time.Duration
	}{
		{gpio.High, 20 * time.Millisecond},
		{gpio.Low, 2 * time.Millisecond},
		{gpio.High, 20 * time.Millisecond},
	} {
		if err := d.rst.Out(step.level); err != nil {
			return errors.Wrap(err, "unable to reset display")
		}
		time.Sleep(step.wait)
	}
	return nil
}

// send writes a command byte, then its data in chunks the spi driver accepts
func (d *Epd7in5V2) send(command byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return errors.Wrap(err, "unable to select command mode")
	}
	if err := d.spiConn.Tx([]byte{command}, nil); err != nil {
		return errors.Wrapf(err, "unable to send command 0x%02x", command)
	}
	if len(data) == 0 {
		return nil
	}

	if err := d.dc.Out(gpio.High); err != nil {
		return errors.Wrap(err, "unable to select data mode")
	}
	for start := 0; start < len(data); start += d.maxTx {
		end := start + d.maxTx
		if end > len(data) {
			end = len(data)
		}
		if err := d.spiConn.Tx(data[start:end], nil); err != nil {
			return errors.Wrapf(err, "unable to send data of command 0x%02x", command)
		}
	}
	return nil
}

// waitIdle polls the controller until the busy line goes high
func (d *Epd7in5V2) waitIdle() error {
	for {
		if err := d.send(cmdGetStatus); err != nil {
			return err
		}
		if d.busy.Read() == gpio.High {
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}
}
