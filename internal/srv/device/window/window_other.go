//go:build !amd64

package window

import (
	"image"
)

// Window is a no-op where gioui isn't built: frames only go to the png file
type Window struct {
}

func New(title string, bounds image.Rectangle) *Window {
	return &Window{}
}

func (w *Window) Show(img image.Image) {
}

func (w *Window) Close() {
}
