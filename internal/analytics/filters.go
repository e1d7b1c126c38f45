package analytics

import "fmt"

// Period selects the purchase-time window applied to raw ledger rows
// before any grouping happens.
type Period string

const (
	PeriodAll     Period = "all"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
)

// Days returns the window length in days, 0 meaning no window.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodQuarter:
		return 90
	default:
		return 0
	}
}

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodAll, PeriodWeek, PeriodMonth, PeriodQuarter:
		return Period(s), nil
	case "":
		return PeriodAll, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// SortBy orders the customer list, always descending.
type SortBy string

const (
	SortByTotalSpent  SortBy = "totalSpent"
	SortByTotalOrders SortBy = "totalOrders"
	SortByRecent      SortBy = "recent"
)

func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case SortByTotalSpent, SortByTotalOrders, SortByRecent:
		return SortBy(s), nil
	case "":
		return SortByTotalSpent, nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

// Segment filters the customer list after grouping. Thresholds for
// highValue and frequent are relative to the set being filtered, not
// global constants.
type Segment string

const (
	SegmentAll       Segment = "all"
	SegmentHighValue Segment = "highValue"
	SegmentFrequent  Segment = "frequent"
	SegmentRecent    Segment = "recent"
)

func ParseSegment(s string) (Segment, error) {
	switch Segment(s) {
	case SegmentAll, SegmentHighValue, SegmentFrequent, SegmentRecent:
		return Segment(s), nil
	case "":
		return SegmentAll, nil
	}
	return "", fmt.Errorf("unknown customer filter %q", s)
}

// Filters bundles every parameter the customer pipeline accepts.
type Filters struct {
	SearchQuery string
	SortBy      SortBy
	FilterBy    Segment
	Period      Period
}
