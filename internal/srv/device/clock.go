package device

import (
	"github.com/jypelle/roomsign/internal/srv/event"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

// Clock tells the wall time of the sign's timezone and asks for a display refresh
// right after Start, then every interval.
type Clock struct {
	lock         sync.RWMutex
	eventChannel chan event.TickerEvent

	location      *time.Location
	interval      time.Duration
	now           func() time.Time
	refreshTicker *time.Ticker

	askDone chan bool
	done    chan bool
}

func NewClock(location *time.Location, interval time.Duration) *Clock {
	return &Clock{
		eventChannel: make(chan event.TickerEvent),
		location:     location,
		interval:     interval,
		now:          time.Now,
		askDone:      make(chan bool),
		done:         make(chan bool),
	}
}

// NewFixedClock always answers the same instant, for previews and tests
func NewFixedClock(instant time.Time, interval time.Duration) *Clock {
	clock := NewClock(instant.Location(), interval)
	clock.now = func() time.Time { return instant }
	return clock
}

func (d *Clock) Now() time.Time {
	return d.now().In(d.location)
}

func (d *Clock) Start() {
	logrus.Infof("Start clock device, refresh every %v", d.interval)
	d.lock.Lock()
	defer d.lock.Unlock()

	d.refreshTicker = time.NewTicker(d.interval)

	go func() {
		send := func() bool {
			select {
			case d.eventChannel <- event.TickerEvent{Data: event.TickerEventRefreshData{Time: d.Now()}}:
				return true
			case <-d.askDone:
				return false
			}
		}

		for loop := send(); loop; {
			select {
			case <-d.refreshTicker.C:
				loop = send()
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()
}

func (d *Clock) StopSendingEvent() {
	logrus.Infof("Stop clock device")
	d.lock.Lock()
	defer d.lock.Unlock()

	d.refreshTicker.Stop()
	d.askDone <- true
	<-d.done
}

func (d *Clock) EventChannel() chan event.TickerEvent {
	return d.eventChannel
}
