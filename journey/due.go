package journey

import "time"

// DueMinutes returns whole minutes from now until the given departure,
// clamped at zero once the departure has passed.
func DueMinutes(departure, now time.Time) int {
	d := departure.Sub(now)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}
