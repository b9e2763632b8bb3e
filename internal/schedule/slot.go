package schedule

import "fmt"

// Slot is one scheduled class occurrence. StartTime and EndTime are 24-hour HH:MM
// strings, compared lexicographically.
type Slot struct {
	Room      string `csv:"room"`
	Day       string `csv:"day"`
	StartTime string `csv:"start_time"`
	EndTime   string `csv:"end_time"`
	Class     string `csv:"class"`
	Title     string `csv:"title"`
	Teacher   string `csv:"teacher"`
}

func (s Slot) TimeRange() string {
	return fmt.Sprintf("%s - %s", s.StartTime, s.EndTime)
}

// Contains tells if hhmm falls in [StartTime, EndTime)
func (s Slot) Contains(day string, hhmm string) bool {
	return s.Day == day && s.StartTime <= hhmm && hhmm < s.EndTime
}
