package event

import "time"

// Ticker
type TickerEvent struct {
	Data interface{}
}

// TickerEventRefreshData asks for a new display cycle
type TickerEventRefreshData struct {
	Time time.Time
}
