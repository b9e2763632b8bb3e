package window

import (
	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/sirupsen/logrus"
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Window shows the last simulated frame on the desktop
type Window struct {
	lock    sync.RWMutex
	lastImg image.Image

	simulationWindow *app.Window
}

func New(title string, bounds image.Rectangle) *Window {
	blank := image.NewGray(bounds)
	draw.Draw(blank, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)

	w := &Window{lastImg: blank}
	w.simulationWindow = app.NewWindow(
		app.Title(title),
		app.Size(unit.Px(float32(bounds.Dx())), unit.Px(float32(bounds.Dy()))),
		app.MinSize(unit.Px(float32(bounds.Dx()/4)), unit.Px(float32(bounds.Dy()/4))),
	)
	go func() {
		if err := w.gioloop(); err != nil {
			logrus.Errorf("Simulation window closed: %v", err)
		}
	}()
	go app.Main()

	return w
}

func (w *Window) Show(img image.Image) {
	w.lock.Lock()
	w.lastImg = img
	w.lock.Unlock()
	w.simulationWindow.Invalidate()
}

func (w *Window) Close() {
	w.simulationWindow.Close()
}

func (w *Window) gioloop() error {
	var ops op.Ops
	for {
		e := <-w.simulationWindow.Events()
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)

			w.lock.RLock()
			lastImg := w.lastImg
			w.lock.RUnlock()

			img := widget.Image{Src: paint.NewImageOp(lastImg), Fit: widget.Contain}
			img.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
