package timeutil

import (
	"time"

	"github.com/dustin/go-humanize"
)

const relativeLimit = 14 * 24 * time.Hour

// HumanTimeFromBase describes t relative to base, like "3 minutes ago". Dates
// too far from base are printed as is.
func HumanTimeFromBase(base, t time.Time) string {
	diff := t.Sub(base)
	if diff > relativeLimit || diff < -relativeLimit {
		return t.Format(time.DateOnly)
	}
	return humanize.RelTime(t, base, "ago", "from now")
}

func HumanTime(t UTCTime) string {
	return HumanTimeFromBase(time.Now(), t.Local())
}

func FullTime(t UTCTime) string {
	return t.Local().Format(time.RFC1123)
}
