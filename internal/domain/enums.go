package domain

// DayStatus classifies a day's total logged hours against DailyTarget.
type DayStatus string

const (
	DayInsufficient DayStatus = "insufficient"
	DaySufficient   DayStatus = "sufficient"
	DayExcessive    DayStatus = "excessive"
)

// ClassifyDay is a pure function of the day's total.
func ClassifyDay(total CentiHours) DayStatus {
	switch {
	case total < DailyTarget:
		return DayInsufficient
	case total == DailyTarget:
		return DaySufficient
	default:
		return DayExcessive
	}
}
