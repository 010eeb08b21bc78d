package timeutil

import (
	"testing"
	"time"
)

func TestHumanTimeFromBase(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		delta time.Duration
		want  string
	}{
		{0, "now"},
		{-500 * time.Millisecond, "now"},
		{-30 * time.Second, "30 seconds ago"},
		{45 * time.Second, "45 seconds from now"},
		{-10 * time.Minute, "10 minutes ago"},
		{-5 * time.Hour, "5 hours ago"},
		{3 * 24 * time.Hour, "3 days from now"},
		{-40 * 24 * time.Hour, "2024-03-22"},
	} {
		got := HumanTimeFromBase(base, base.Add(tc.delta))
		if got != tc.want {
			t.Fatalf("delta %v: expected = %q, got = %q", tc.delta, tc.want, got)
		}
	}
}
