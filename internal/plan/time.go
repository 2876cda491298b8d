package plan

import "fmt"

const (
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
	// SlotMinutes is the snapping granularity for all interactive edits.
	SlotMinutes = 15
	// MinDuration is the shortest interval an interactive edit may produce.
	MinDuration = 15
)

// ToMinutes converts "HH:mm" to minutes since midnight.
// Malformed input is validated upstream (the editor); short strings yield 0.
func ToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// ToTime converts minutes since midnight to zero-padded "HH:mm".
// Values outside a single day are reduced mod 1440, so 1440 maps back to
// "00:00" and a resize past midnight lands on the next day's clock.
func ToTime(m int) string {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// IsWrap reports whether an interval [start, end) crosses midnight.
// end == 0 means "until end of day" and is deliberately not a wrap.
func IsWrap(start, end int) bool {
	return end < start && end != 0
}

// Duration returns the length in minutes of the interval [start, end),
// accounting for midnight wraps and the exact-midnight end.
func Duration(start, end int) int {
	switch {
	case IsWrap(start, end):
		return end - start + MinutesPerDay
	case end == 0:
		return MinutesPerDay - start
	default:
		return end - start
	}
}
