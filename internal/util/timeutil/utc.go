package timeutil

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// UTCTime is stored in the database as UTC regardless of the local timezone
// of the server.
type UTCTime time.Time

func NowUTC() UTCTime {
	return UTCTime(time.Now().UTC())
}

func (t UTCTime) UTC() time.Time {
	return time.Time(t).UTC()
}

func (t UTCTime) Local() time.Time {
	return time.Time(t).Local()
}

func (t UTCTime) Add(delta time.Duration) UTCTime {
	return UTCTime(time.Time(t).Add(delta))
}

func (t UTCTime) Before(u UTCTime) bool {
	return time.Time(t).Before(time.Time(u))
}

func (t UTCTime) String() string {
	return t.UTC().Format(time.RFC3339)
}

func (t UTCTime) Value() (driver.Value, error) {
	return t.UTC(), nil
}

func (t *UTCTime) Scan(value any) error {
	if value == nil {
		*t = UTCTime{}
		return nil
	}
	cvt, err := driver.DefaultParameterConverter.ConvertValue(value)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	cvtTime, ok := cvt.(time.Time)
	if !ok {
		return fmt.Errorf("expected type time.Time, got type %T", cvt)
	}
	*t = UTCTime(cvtTime.UTC())
	return nil
}
