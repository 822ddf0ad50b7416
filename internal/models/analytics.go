package models

// WeeklySeries is a rolling 7-day bucket counter. Index 6 is today, index 0
// is six days ago.
type WeeklySeries [7]int

// Total sums the series.
func (s WeeklySeries) Total() int {
	total := 0
	for _, c := range s {
		total += c
	}
	return total
}

// TrendDirection describes a period-over-period comparison.
type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

// OverviewMetric pairs a weekly series with its growth against the prior week.
type OverviewMetric struct {
	Daily     WeeklySeries   `json:"daily"`
	WeekTotal int            `json:"week_total"`
	Growth    string         `json:"growth"`
	Trend     TrendDirection `json:"trend"`
}

// AnalyticsOverview is the admin dashboard analytics payload.
type AnalyticsOverview struct {
	Signups       OverviewMetric `json:"signups"`
	Materials     OverviewMetric `json:"materials"`
	Notifications OverviewMetric `json:"notifications"`
	MaterialViews WeeklySeries   `json:"material_views"`
}
