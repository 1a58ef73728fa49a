package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	inDurationRe    = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)
	chineseNextRe   = regexp.MustCompile(`^下(?:週|周|星期|禮拜)([一二三四五六日天])$`)
	chineseWithinRe = regexp.MustCompile(`^(\d+)\s*(天|週|周|個月|个月)(?:內|内|後|后)$`)
)

// Parser converts date expressions to absolute dates in one timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location is the parser's timezone.
func (p *Parser) Location() *time.Location { return p.location }

// Parse resolves expr against base and returns the start of that day.
// Accepted forms: ISO dates, today/tomorrow/yesterday, "in N days|weeks|months",
// "next <weekday>", and their Chinese equivalents (明天, 後天, 下週五, 3天內).
func (p *Parser) Parse(expr string, base time.Time) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return time.Time{}, ErrUnrecognized
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, expr, p.location); err == nil {
			return p.startOfDay(t), nil
		}
	}

	expr = strings.ToLower(expr)

	if n, ok := dayOffsets[expr]; ok {
		return p.startOfDay(base.AddDate(0, 0, n)), nil
	}

	if m := inDurationRe.FindStringSubmatch(expr); m != nil {
		amount, _ := strconv.Atoi(m[1])
		return p.addUnit(base, amount, m[2]), nil
	}

	if m := chineseWithinRe.FindStringSubmatch(expr); m != nil {
		amount, _ := strconv.Atoi(m[1])
		return p.addUnit(base, amount, m[2]), nil
	}

	if day, ok := strings.CutPrefix(expr, "next "); ok {
		wd, ok := englishWeekdays[day]
		if !ok {
			return time.Time{}, fmt.Errorf("%w: unknown weekday %q", ErrUnrecognized, day)
		}
		return p.nextWeekday(base, wd), nil
	}

	if m := chineseNextRe.FindStringSubmatch(expr); m != nil {
		return p.nextWeekday(base, chineseWeekdays[m[1]]), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, expr)
}

func (p *Parser) addUnit(base time.Time, amount int, unit string) time.Time {
	switch {
	case strings.HasPrefix(unit, "week"), unit == "週", unit == "周":
		return p.startOfDay(base.AddDate(0, 0, amount*7))
	case strings.HasPrefix(unit, "month"), strings.HasSuffix(unit, "月"):
		return p.startOfDay(base.AddDate(0, amount, 0))
	default:
		return p.startOfDay(base.AddDate(0, 0, amount))
	}
}

// nextWeekday is the first wd strictly after base.
func (p *Parser) nextWeekday(base time.Time, wd time.Weekday) time.Time {
	base = base.In(p.location)
	daysUntil := int(wd - base.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return p.startOfDay(base.AddDate(0, 0, daysUntil))
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
