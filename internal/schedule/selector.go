package schedule

import (
	"github.com/samber/lo"
	"time"
)

const (
	dayLayout  = "Monday"
	timeLayout = "15:04"
)

// Current returns the first slot of the schedule running at now. When rows overlap,
// the earliest one in the source wins.
func Current(slots []Slot, now time.Time) (Slot, bool) {
	day := now.Format(dayLayout)
	hhmm := now.Format(timeLayout)

	return lo.Find(slots, func(slot Slot) bool {
		return slot.Contains(day, hhmm)
	})
}

type Overlap struct {
	First  Slot
	Second Slot
}

// Overlaps lists the pairs of slots sharing a day whose time ranges intersect.
// Selection is not affected by them, they are only worth a warning.
func Overlaps(slots []Slot) []Overlap {
	var overlaps []Overlap
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			a, b := slots[i], slots[j]
			if a.Day == b.Day && a.StartTime < b.EndTime && b.StartTime < a.EndTime {
				overlaps = append(overlaps, Overlap{First: a, Second: b})
			}
		}
	}
	return overlaps
}
