package plan

// DefaultCategoryID is the fixed fallback category. Events in a deleted
// category are reassigned to it.
const DefaultCategoryID = "general"

// fixedCategories are hardcoded, always present and never stored or deleted.
// Own Time carries per-side colors: blue for husband, pink for wife.
var fixedCategories = []Category{
	{ID: "general", Name: "General", Color: "#6b7280", ColorDark: "#9ca3af"},
	{
		ID: "own-time", Name: "Own Time", Color: "#3b82f6", ColorDark: "#60a5fa",
		ColorHusband: "#3b82f6", ColorWife: "#ec4899",
		ColorHusbandDark: "#60a5fa", ColorWifeDark: "#f472b6",
	},
	{ID: "family-time", Name: "Family Time", Color: "#dc2626", ColorDark: "#f87171"},
	{ID: "work", Name: "Work", Color: "#ea580c", ColorDark: "#fb923c"},
	{ID: "sleep", Name: "Sleep", Color: "#e5e5e5", ColorDark: "#404040"},
}

// IsFixedCategory reports whether id is one of the hardcoded categories.
func IsFixedCategory(id string) bool {
	for _, c := range fixedCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// FixedCategories returns a copy of the hardcoded category list.
func FixedCategories() []Category {
	out := make([]Category, len(fixedCategories))
	copy(out, fixedCategories)
	return out
}

// MergeCategories combines the hardcoded categories with custom ones from
// the store, fixed first. Custom entries shadowing a fixed id are dropped.
func MergeCategories(custom []Category) []Category {
	merged := FixedCategories()
	for _, c := range custom {
		if !IsFixedCategory(c.ID) {
			merged = append(merged, c)
		}
	}
	return merged
}

// CategoryColor resolves the display color for a category on a given side.
// Per-side colors (Own Time) win when present; combined events use the
// husband color. dark selects the dark-theme variant when one exists.
// Unknown ids fall back to a neutral gray.
func CategoryColor(categories []Category, id string, user UserType, dark bool) string {
	for _, c := range categories {
		if c.ID != id {
			continue
		}
		if c.ColorHusband != "" && c.ColorWife != "" {
			if dark && c.ColorHusbandDark != "" && c.ColorWifeDark != "" {
				if user == Wife {
					return c.ColorWifeDark
				}
				return c.ColorHusbandDark
			}
			if user == Wife {
				return c.ColorWife
			}
			return c.ColorHusband
		}
		if dark && c.ColorDark != "" {
			return c.ColorDark
		}
		return c.Color
	}
	return "#cccccc"
}
