package parking

// DayUsage holds the counts for one day. Day is one-based.
type DayUsage struct {
	Day        int `json:"day"`
	Accessible int `json:"accessible_used"`
	General    int `json:"general_used"`
	Total      int `json:"total_used"`
}

type Report struct {
	Days       []DayUsage `json:"days"`
	Accessible int        `json:"accessible_used_total"`
	General    int        `json:"general_used_total"`
	Total      int        `json:"total_used_total"`
}

// Summarize counts usage per day and over the whole grid.
//
// Accessible usage counts accessible spaces booked for an accessibility
// request. General usage counts general spaces booked for a general request.
// Fallback bookings on accessible spaces therefore count towards neither.
func Summarize(g *Grid) Report {
	report := Report{Days: make([]DayUsage, 0, Days)}
	for d := 0; d < Days; d++ {
		usage := DayUsage{Day: d + 1}
		for s := 0; s < SlotsPerDay; s++ {
			b := g.days[d][s]
			if b == nil {
				continue
			}
			if IsAccessibleSlot(s) && b.IsAccessible {
				usage.Accessible++
			}
			if !IsAccessibleSlot(s) && !b.IsAccessible {
				usage.General++
			}
		}
		usage.Total = usage.Accessible + usage.General
		report.Days = append(report.Days, usage)

		report.Accessible += usage.Accessible
		report.General += usage.General
	}
	report.Total = report.Accessible + report.General
	return report
}
