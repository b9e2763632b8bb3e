package srv

import (
	"github.com/jypelle/roomsign/internal/srv/event"
	"github.com/sirupsen/logrus"
	"time"
)

func (s *ServerApp) eventLoop() {
	for loop := true; loop; {
		select {
		case ev := <-s.clockDevice.EventChannel():
			switch data := ev.Data.(type) {
			case event.TickerEventRefreshData:
				logrus.Debugf("Receive refresh tick: %s", data.Time.Format(time.RFC3339))
				s.refreshDisplay(data.Time)
			}
		case <-s.eventLoopAskDone:
			loop = false
		}
	}
	s.eventLoopDone <- true
}
