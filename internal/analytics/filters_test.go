package analytics

import "testing"

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"all", "week", "month", "quarter"} {
		if _, err := ParsePeriod(s); err != nil {
			t.Errorf("ParsePeriod(%q): unexpected error %v", s, err)
		}
	}
	if p, err := ParsePeriod(""); err != nil || p != PeriodAll {
		t.Errorf("empty period should default to all, got %q, %v", p, err)
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestPeriodDays(t *testing.T) {
	cases := map[Period]int{PeriodAll: 0, PeriodWeek: 7, PeriodMonth: 30, PeriodQuarter: 90}
	for p, want := range cases {
		if got := p.Days(); got != want {
			t.Errorf("%s.Days(): got %d, want %d", p, got, want)
		}
	}
}

func TestParseSortBy(t *testing.T) {
	if s, err := ParseSortBy(""); err != nil || s != SortByTotalSpent {
		t.Errorf("empty sort should default to totalSpent, got %q, %v", s, err)
	}
	if _, err := ParseSortBy("alphabetical"); err == nil {
		t.Error("expected error for unknown sort")
	}
}

func TestParseSegment(t *testing.T) {
	for _, s := range []string{"all", "highValue", "frequent", "recent"} {
		if _, err := ParseSegment(s); err != nil {
			t.Errorf("ParseSegment(%q): unexpected error %v", s, err)
		}
	}
	if _, err := ParseSegment("vip"); err == nil {
		t.Error("expected error for unknown segment")
	}
}
