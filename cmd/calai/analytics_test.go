package calai

import (
	"testing"
	"time"
)

func TestResolveWeekRangeRejectsBadWeeks(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	for _, week := range []string{"2026-W1", "2026-W00", "2021-W53", "26-W10", "2026W10"} {
		if _, _, err := resolveWeekRange(week, now); err == nil {
			t.Fatalf("expected %q to fail", week)
		}
	}
}

func TestResolveWeekRangeAcceptsLongISOYear(t *testing.T) {
	t.Parallel()
	start, end, err := resolveWeekRange("2020-W53", time.Now().UTC())
	if err != nil {
		t.Fatalf("expected valid ISO week, got error: %v", err)
	}
	if start.Format("2006-01-02") != "2020-12-28" || end.Format("2006-01-02") != "2021-01-03" {
		t.Fatalf("expected 2020-12-28..2021-01-03, got %s..%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
}

func TestResolveWeekRangeDefaultsToCurrentWeek(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC-5", -5*3600)
	// Sunday evening stays in the week that began on Monday the 23rd.
	now := time.Date(2026, 3, 1, 21, 30, 0, 0, loc)
	start, end, err := resolveWeekRange("", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if start != time.Date(2026, 2, 23, 0, 0, 0, 0, loc) {
		t.Fatalf("expected Monday 2026-02-23 in zone, got %v", start)
	}
	if end.Format("2006-01-02") != "2026-03-01" {
		t.Fatalf("expected Sunday end, got %s", end.Format("2006-01-02"))
	}
}

func TestResolveMonthRange(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 2, 17, 8, 0, 0, 0, time.UTC)
	start, end, err := resolveMonthRange("", now)
	if err != nil {
		t.Fatalf("resolve current month: %v", err)
	}
	if start.Format("2006-01-02") != "2024-02-01" || end.Format("2006-01-02") != "2024-02-29" {
		t.Fatalf("expected leap February, got %s..%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	start, end, err = resolveMonthRange("2025-12", now)
	if err != nil {
		t.Fatalf("resolve explicit month: %v", err)
	}
	if start.Format("2006-01-02") != "2025-12-01" || end.Format("2006-01-02") != "2025-12-31" {
		t.Fatalf("unexpected range %s..%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if _, _, err := resolveMonthRange("2025-13", now); err == nil {
		t.Fatalf("expected month 13 to fail")
	}
}
