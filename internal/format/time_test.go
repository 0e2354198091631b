package format

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "rfc3339", input: "2024-03-05T14:30:00Z", ok: true},
		{name: "rfc3339-nano", input: "2024-03-05T14:30:00.123456789Z", ok: true},
		{name: "naive-micros", input: "2024-03-05T14:30:00.123456", ok: true},
		{name: "naive", input: "2024-03-05T14:30:00", ok: true},
		{name: "space-separated", input: "2024-03-05 14:30:00", ok: true},
		{name: "date-only", input: "2024-03-05", ok: true},
		{name: "padded", input: "  2024-03-05T14:30:00Z  ", ok: true},
		{name: "garbage", input: "not-a-time", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseTimestamp(tt.input); ok != tt.ok {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestClockFormats(t *testing.T) {
	clock := NewClock(time.UTC)

	if got := clock.EventTime("2024-03-05T14:30:45Z"); got != "14:30:45 05.03.24" {
		t.Fatalf("EventTime() = %q", got)
	}
	if got := clock.ShiftTime("2024-03-05T14:30:45Z"); got != "05.03.2024 14:30" {
		t.Fatalf("ShiftTime() = %q", got)
	}
	if got := clock.ClockTime("2024-03-05T14:30:45Z"); got != "14:30" {
		t.Fatalf("ClockTime() = %q", got)
	}
}

func TestClockTimezoneConversion(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	clock := NewClock(loc)

	if got := clock.EventTime("2024-03-05T23:30:00Z"); got != "02:30:00 06.03.24" {
		t.Fatalf("EventTime() = %q", got)
	}
}

// 파싱 실패한 값은 가공 없이 그대로 통과
func TestClockPassesThroughUnparsable(t *testing.T) {
	clock := NewClock(time.UTC)

	for _, input := range []string{"soon", "", "99:99"} {
		if got := clock.ShiftTime(input); got != input {
			t.Fatalf("ShiftTime(%q) = %q, want the input back", input, got)
		}
	}
}
