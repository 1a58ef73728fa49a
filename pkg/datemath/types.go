package datemath

import (
	"errors"
	"time"
)

// ErrUnrecognized is returned for expressions the parser cannot place on
// a calendar. Callers treat it as "no date".
var ErrUnrecognized = errors.New("datemath: unrecognized date expression")

var absoluteLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	time.RFC3339,
}

var englishWeekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var chineseWeekdays = map[string]time.Weekday{
	"一": time.Monday,
	"二": time.Tuesday,
	"三": time.Wednesday,
	"四": time.Thursday,
	"五": time.Friday,
	"六": time.Saturday,
	"日": time.Sunday,
	"天": time.Sunday,
}

var dayOffsets = map[string]int{
	"today":     0,
	"tomorrow":  1,
	"yesterday": -1,
	"今天":        0,
	"今日":        0,
	"明天":        1,
	"明日":        1,
	"後天":        2,
	"后天":        2,
	"昨天":        -1,
}
