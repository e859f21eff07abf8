package field

import "time"

// LinkOpacity returns the opacity of a link between two points distance apart.
// It falls linearly from 1 at distance 0 to 0 at radius; links at or beyond
// radius are not drawn, reported as ok == false.
func LinkOpacity(distance, radius float64) (opacity float64, ok bool) {
	if radius <= 0 || distance >= radius {
		return 0, false
	}
	if distance < 0 {
		distance = 0
	}
	return 1 - distance/radius, true
}

// ScrollMultiplier returns the speed multiplier at now given the time of the
// last scroll signal: boost until debounce has elapsed since lastScroll, 1
// afterwards. A zero lastScroll means no scroll has happened yet.
func ScrollMultiplier(now, lastScroll time.Time, boost float64, debounce time.Duration) float64 {
	if lastScroll.IsZero() {
		return 1
	}
	if now.Sub(lastScroll) >= debounce {
		return 1
	}
	return boost
}
