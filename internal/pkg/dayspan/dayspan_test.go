package dayspan

import (
	"testing"
	"time"
)

func TestBoundsYesterdayHalfOpen(t *testing.T) {
	now := time.Date(2024, 5, 10, 13, 37, 0, 0, time.Local)
	start, end, ok := Bounds(Yesterday, now)
	if !ok {
		t.Fatal("expected yesterday to be a known period")
	}

	todayMidnight := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)
	yesterdayMidnight := time.Date(2024, 5, 9, 0, 0, 0, 0, time.Local)

	if !start.Equal(yesterdayMidnight) || !end.Equal(todayMidnight) {
		t.Fatalf("unexpected window: [%v, %v)", start, end)
	}

	// the boundary instant itself belongs to today, not yesterday
	if Contains(todayMidnight, start, end) {
		t.Error("today's midnight must be excluded from the yesterday window")
	}
	if !Contains(yesterdayMidnight, start, end) {
		t.Error("yesterday's midnight must be included in the yesterday window")
	}
}

func TestBoundsUnboundedWindows(t *testing.T) {
	now := time.Date(2024, 5, 10, 13, 37, 0, 0, time.Local)

	for _, period := range []string{Today, Last7Days, Last30Days, AllTime} {
		_, end, ok := Bounds(period, now)
		if !ok {
			t.Fatalf("expected %s to be a known period", period)
		}
		if !end.IsZero() {
			t.Errorf("%s should have no upper bound, got %v", period, end)
		}
	}

	start, _, _ := Bounds(Today, now)
	if !start.Equal(Midnight(now)) {
		t.Errorf("today should start at local midnight, got %v", start)
	}
}

func TestBoundsUnknownPeriod(t *testing.T) {
	if _, _, ok := Bounds("fortnight", time.Now()); ok {
		t.Error("unknown period must not resolve to a window")
	}
}
