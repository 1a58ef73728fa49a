package datemath_test

import (
	"errors"
	"testing"
	"time"

	"project-assistant/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	if _, err := datemath.NewParser("Asia/Taipei"); err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}
	if _, err := datemath.NewParser("Invalid/Timezone"); err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expr    string
		want    time.Time
		wantErr bool
	}{
		{name: "ISO date", expr: "2024-06-30", want: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)},
		{name: "Slash date", expr: "2024/6/3", want: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
		{name: "RFC3339", expr: "2024-06-30T10:00:00Z", want: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)},
		{name: "Today", expr: "today", want: startOfBase},
		{name: "Tomorrow", expr: "Tomorrow ", want: startOfBase.AddDate(0, 0, 1)},
		{name: "Yesterday", expr: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{name: "In 3 days", expr: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "In 2 weeks", expr: "in 2 weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "In 1 month", expr: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "Next Friday", expr: "next friday", want: startOfBase.AddDate(0, 0, 2)},
		{name: "Next Wednesday is a week out", expr: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "明天", expr: "明天", want: startOfBase.AddDate(0, 0, 1)},
		{name: "後天", expr: "後天", want: startOfBase.AddDate(0, 0, 2)},
		{name: "下週五", expr: "下週五", want: startOfBase.AddDate(0, 0, 2)},
		{name: "下星期一", expr: "下星期一", want: startOfBase.AddDate(0, 0, 5)},
		{name: "3天內", expr: "3天內", want: startOfBase.AddDate(0, 0, 3)},
		{name: "2週後", expr: "2週後", want: startOfBase.AddDate(0, 0, 14)},
		{name: "Empty", expr: "", wantErr: true},
		{name: "Unknown weekday", expr: "next someday", wantErr: true},
		{name: "Gibberish", expr: "whenever", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.expr, baseTime)
			if tt.wantErr {
				if !errors.Is(err, datemath.ErrUnrecognized) {
					t.Fatalf("expected ErrUnrecognized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParse_Timezone(t *testing.T) {
	parser, _ := datemath.NewParser("Asia/Taipei")
	// 20:00 UTC is already the next day in Taipei.
	base := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	got, err := parser.Parse("today", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 2 || got.Location() != parser.Location() {
		t.Errorf("expected May 2 in Asia/Taipei, got %v", got)
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := parser.EndOfDay(start); got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
		t.Errorf("unexpected end of day %v", got)
	}
}
