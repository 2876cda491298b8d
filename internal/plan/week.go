package plan

// The grid displays Monday through Sunday while DayOfWeek is stored with
// 0 = Sunday. weekdayOrder maps a display column index to its DayOfWeek.
var weekdayOrder = [7]int{1, 2, 3, 4, 5, 6, 0}

// DayNames are the column headers, Monday first.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayForColumn returns the DayOfWeek value shown in display column col.
func DayForColumn(col int) int {
	return weekdayOrder[col]
}

// ColumnForDay returns the display column for a DayOfWeek value.
func ColumnForDay(day int) int {
	for i, d := range weekdayOrder {
		if d == day {
			return i
		}
	}
	return -1
}

// NextDay returns the DayOfWeek following day, wrapping Saturday to Sunday.
func NextDay(day int) int {
	return (day + 1) % 7
}
