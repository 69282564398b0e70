package domain

import "fmt"

// ChartPeriod selects how many trailing days a timeline covers.
type ChartPeriod string

const (
	Period7Days  ChartPeriod = "7days"
	Period30Days ChartPeriod = "30days"
	Period90Days ChartPeriod = "90days"
	PeriodAll    ChartPeriod = "all"
)

func (p ChartPeriod) Validate() error {
	switch p {
	case Period7Days, Period30Days, Period90Days, PeriodAll:
		return nil
	default:
		return fmt.Errorf("unsupported chart period %q", string(p))
	}
}

// Days returns the fixed window length; zero for PeriodAll.
func (p ChartPeriod) Days() int {
	switch p {
	case Period7Days:
		return 7
	case Period30Days:
		return 30
	case Period90Days:
		return 90
	default:
		return 0
	}
}

// TimelinePoint is one date of a chart series. Dates without an entry have nil fields.
type TimelinePoint struct {
	Date   string
	Weight *float64
	Steps  *int
	Water  *int
}
