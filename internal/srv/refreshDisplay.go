package srv

import (
	"github.com/jypelle/roomsign/internal/images"
	"github.com/jypelle/roomsign/internal/schedule"
	"github.com/sirupsen/logrus"
	"image"
	"time"
)

type FrameKind int64

const (
	CLASS_FRAME FrameKind = iota
	EVENT_FRAME
	FALLBACK_FRAME
)

// Frame is what one cycle decided to show
type Frame struct {
	Kind      FrameKind
	Slot      schedule.Slot
	ImagePath string
	Image     image.Image
}

func (s *ServerApp) refreshDisplay(now time.Time) Frame {
	frame := s.nextFrame(now)
	if err := s.displayDevice.Show(frame.Image); err != nil {
		logrus.Errorf("Unable to refresh display: %v", err)
	}
	return frame
}

func (s *ServerApp) nextFrame(now time.Time) Frame {
	slots := s.scheduleRepository.Load(s.roomId)
	for _, overlap := range schedule.Overlaps(slots) {
		logrus.Warnf("Overlapping classes on %s: %s (%s) and %s (%s), showing the first one",
			overlap.First.Day,
			overlap.First.Class, overlap.First.TimeRange(),
			overlap.Second.Class, overlap.Second.TimeRange())
	}

	if slot, ok := schedule.Current(slots, now); ok {
		logrus.Infof("Displaying class: %s", slot.Class)
		return Frame{Kind: CLASS_FRAME, Slot: slot, Image: s.renderer.ClassInfo(slot)}
	}

	if path, ok := s.slideshow.Next(); ok {
		img, err := images.Load(s.Fs, path, s.renderer.Bounds())
		if err == nil {
			logrus.Infof("Displaying event image: %s", path)
			return Frame{Kind: EVENT_FRAME, ImagePath: path, Image: img}
		}
		logrus.Warnf("Unable to display event image, displaying fallback message: %v", err)
	} else {
		logrus.Warnf("No events found, displaying fallback message")
	}

	return Frame{Kind: FALLBACK_FRAME, Image: s.renderer.Fallback()}
}
