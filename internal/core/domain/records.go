package domain

// weeklyWindow is the number of most recent water entries averaged by
// WeeklyWaterAverage.
const weeklyWindow = 7

// WaterRecord is one hydration entry.
type WaterRecord struct {
	Datetime string  `json:"datetime"`
	AmountMl float64 `json:"amountMl"`
}

// SleepRecord is one night of sleep.
type SleepRecord struct {
	Datetime string  `json:"datetime"`
	Hours    float64 `json:"hours"`
}

// ActivityRecord is one exercise session. Intensity is a free-form tag.
type ActivityRecord struct {
	Datetime  string `json:"datetime"`
	Minutes   int    `json:"minutes"`
	Intensity string `json:"intensity"`
}

// CategoryItem is one entry of a user-defined category.
type CategoryItem struct {
	Datetime string  `json:"datetime"`
	Value    float64 `json:"value"`
	Note     string  `json:"note"`
}

// WeeklyWaterAverage averages AmountMl over the last min(7, len) entries.
func WeeklyWaterAverage(records []WaterRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	window := records
	if len(window) > weeklyWindow {
		window = window[len(window)-weeklyWindow:]
	}
	var sum float64
	for _, r := range window {
		sum += r.AmountMl
	}
	return sum / float64(len(window))
}

// LastSleepHours returns the hours of the most recently appended entry.
func LastSleepHours(records []SleepRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	return records[len(records)-1].Hours
}
