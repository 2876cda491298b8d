package plan

// UserType says which side of a day column an event occupies.
type UserType string

const (
	Husband  UserType = "husband"
	Wife     UserType = "wife"
	Combined UserType = "combined" // spans both sub-columns
)

// WeekType selects the alternating-week variant an event belongs to.
type WeekType string

const (
	WeekA    WeekType = "A"
	WeekB    WeekType = "B"
	WeekBoth WeekType = "both"
)

// Event is a weekly recurring block of time. Times are naive wall-clock
// "HH:mm" strings; an event whose end is numerically before its start wraps
// past midnight into the following day. An event ending exactly at midnight
// is stored with EndTime "00:00" and does not wrap.
type Event struct {
	ID          string
	Title       string
	Description string
	CategoryID  string
	DayOfWeek   int // 0 = Sunday .. 6 = Saturday
	StartTime   string
	EndTime     string
	UserType    UserType
	WeekType    WeekType
}

func (e Event) StartMinutes() int { return ToMinutes(e.StartTime) }
func (e Event) EndMinutes() int   { return ToMinutes(e.EndTime) }

// Wraps reports whether the event runs past midnight into the next day.
// The "00:00" end is the asymmetric exception: it means "until end of the
// start day", never a wrap.
func (e Event) Wraps() bool {
	return IsWrap(e.StartMinutes(), e.EndMinutes())
}

// DurationMinutes is the true length of the event, wrap-aware.
func (e Event) DurationMinutes() int {
	return Duration(e.StartMinutes(), e.EndMinutes())
}

// VisibleIn reports whether the event appears in the given active week.
func (e Event) VisibleIn(week WeekType) bool {
	return e.WeekType == WeekBoth || e.WeekType == week
}

// Category supplies display colors for events. The per-side and dark
// variants are optional; CategoryColor picks the right one.
type Category struct {
	ID               string
	Name             string
	Color            string
	ColorDark        string
	ColorHusband     string
	ColorWife        string
	ColorHusbandDark string
	ColorWifeDark    string
}
