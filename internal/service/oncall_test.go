package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oncall-gateway/backend/internal/format"
	"github.com/oncall-gateway/backend/internal/model"
)

type stubFetcher struct {
	schedule *model.Schedule
	shifts   []byte
	list     []model.Schedule
	err      error
}

func (s *stubFetcher) FetchFinalShifts(_ context.Context, _, _, _ string) ([]byte, error) {
	return s.shifts, s.err
}

func (s *stubFetcher) FetchSchedule(_ context.Context, _ string) (*model.Schedule, error) {
	return s.schedule, s.err
}

func (s *stubFetcher) FetchSchedules(_ context.Context) ([]model.Schedule, error) {
	return s.list, s.err
}

type stubSender struct {
	sent []string
	err  error
}

func (s *stubSender) SendMessage(_ context.Context, _ uuid.UUID, body string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, body)
	return "sync-1", nil
}

func newTestOnCallService(fetcher *stubFetcher, sender *stubSender) *OnCallService {
	router := NewChatRouter(
		map[string]string{"T1": "11111111-1111-1111-1111-111111111111"},
		"",
	)
	schedules := format.NewScheduleFormatter(format.NewClock(time.UTC))
	return NewOnCallService(fetcher, router, sender, schedules)
}

func TestCurrentOnCallSendsDaySummaryForMultipleShifts(t *testing.T) {
	fetcher := &stubFetcher{
		schedule: &model.Schedule{ID: "S1", Name: "Primary", TeamID: "T1"},
		shifts: []byte(`{"results": [
			{"user": {"name": "Alice"}, "start": "2025-01-01T09:00:00Z", "end": "2025-01-01T17:00:00Z"},
			{"user": {"name": "Bob"}, "start": "2025-01-01T17:00:00Z", "end": "2025-01-02T01:00:00Z"},
			{"user": {"name": "Carol"}, "start": "2025-01-02T01:00:00Z", "end": "2025-01-02T09:00:00Z"}
		]}`),
	}
	sender := &stubSender{}

	resp, err := newTestOnCallService(fetcher, sender).CurrentOnCall(context.Background(), "S1", "", "", true)
	if err != nil {
		t.Fatalf("CurrentOnCall() error = %v", err)
	}
	if !resp.SentToChat {
		t.Fatal("CurrentOnCall() sent_to_chat = false, want true")
	}
	if len(resp.Shifts) != 3 {
		t.Fatalf("CurrentOnCall() shifts = %d, want 3", len(resp.Shifts))
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sender got %d messages, want 1", len(sender.sent))
	}
	// 시프트가 여러 개면 단건 형태가 아니라 일일 요약 형태
	if !strings.Contains(sender.sent[0], "On duty today (3 shifts):") {
		t.Fatalf("sent message is not a day summary:\n%s", sender.sent[0])
	}
	if strings.Contains(sender.sent[0], "Current on-call:") {
		t.Fatalf("sent message is the single-shift form:\n%s", sender.sent[0])
	}
}

func TestCurrentOnCallSingleShiftForm(t *testing.T) {
	fetcher := &stubFetcher{
		schedule: &model.Schedule{ID: "S1", Name: "Primary", TeamID: "T1"},
		shifts:   []byte(`[{"user": {"name": "Alice"}, "start": "2025-01-01T09:00:00Z"}]`),
	}
	sender := &stubSender{}

	resp, err := newTestOnCallService(fetcher, sender).CurrentOnCall(context.Background(), "S1", "", "", true)
	if err != nil {
		t.Fatalf("CurrentOnCall() error = %v", err)
	}
	if !resp.SentToChat {
		t.Fatal("CurrentOnCall() sent_to_chat = false, want true")
	}
	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0], "Current on-call:") {
		t.Fatalf("sent messages = %q", sender.sent)
	}
}

func TestCurrentOnCallNoShifts(t *testing.T) {
	fetcher := &stubFetcher{
		schedule: &model.Schedule{ID: "S1", Name: "Primary"},
		shifts:   []byte(`{"results": []}`),
	}

	_, err := newTestOnCallService(fetcher, &stubSender{}).CurrentOnCall(context.Background(), "S1", "", "", false)
	if !errors.Is(err, ErrNoShifts) {
		t.Fatalf("CurrentOnCall() error = %v, want ErrNoShifts", err)
	}
}

func TestCurrentOnCallSendFailureDoesNotFailQuery(t *testing.T) {
	fetcher := &stubFetcher{
		schedule: &model.Schedule{ID: "S1", Name: "Primary", TeamID: "T1"},
		shifts:   []byte(`[{"user": {"name": "Alice"}}]`),
	}
	sender := &stubSender{err: errors.New("botx down")}

	resp, err := newTestOnCallService(fetcher, sender).CurrentOnCall(context.Background(), "S1", "", "", true)
	if err != nil {
		t.Fatalf("CurrentOnCall() error = %v", err)
	}
	if resp.SentToChat {
		t.Fatal("CurrentOnCall() sent_to_chat = true after send failure")
	}
}

func TestShiftsEmptyPeriodIsNotAnError(t *testing.T) {
	fetcher := &stubFetcher{
		schedule: &model.Schedule{ID: "S1", Name: "Primary"},
		shifts:   []byte(`{"results": []}`),
	}

	resp, err := newTestOnCallService(fetcher, &stubSender{}).Shifts(context.Background(), "S1", "", "", false)
	if err != nil {
		t.Fatalf("Shifts() error = %v", err)
	}
	if resp.ShiftsCount != 0 || len(resp.Shifts) != 0 {
		t.Fatalf("Shifts() count = %d, len = %d, want 0", resp.ShiftsCount, len(resp.Shifts))
	}
}

func TestShiftsResponseCapped(t *testing.T) {
	var items []string
	for i := 0; i < 14; i++ {
		items = append(items, `{"user": {"name": "Alice"}}`)
	}
	fetcher := &stubFetcher{
		schedule: &model.Schedule{ID: "S1", Name: "Primary"},
		shifts:   []byte("[" + strings.Join(items, ",") + "]"),
	}

	resp, err := newTestOnCallService(fetcher, &stubSender{}).Shifts(context.Background(), "S1", "", "", false)
	if err != nil {
		t.Fatalf("Shifts() error = %v", err)
	}
	if resp.ShiftsCount != 14 {
		t.Fatalf("Shifts() count = %d, want 14", resp.ShiftsCount)
	}
	if len(resp.Shifts) != maxShiftsInResponse {
		t.Fatalf("Shifts() returned %d shifts, want %d", len(resp.Shifts), maxShiftsInResponse)
	}
}

func TestShiftsSendDaySummary(t *testing.T) {
	fetcher := &stubFetcher{
		schedule: &model.Schedule{ID: "S1", Name: "Primary", TeamID: "T1"},
		shifts:   []byte(`[{"user": {"name": "Alice"}, "start": "2025-01-01T09:00:00Z", "end": "2025-01-01T18:00:00Z"}]`),
	}
	sender := &stubSender{}

	resp, err := newTestOnCallService(fetcher, sender).Shifts(context.Background(), "S1", "", "", true)
	if err != nil {
		t.Fatalf("Shifts() error = %v", err)
	}
	if !resp.SentToChat {
		t.Fatal("Shifts() sent_to_chat = false, want true")
	}
	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0], "On duty today") {
		t.Fatalf("sent messages = %q", sender.sent)
	}
}

func TestShiftsUpstreamError(t *testing.T) {
	upstream := errors.New("oncall unavailable")
	fetcher := &stubFetcher{err: upstream}

	if _, err := newTestOnCallService(fetcher, &stubSender{}).Shifts(context.Background(), "S1", "", "", false); !errors.Is(err, upstream) {
		t.Fatalf("Shifts() error = %v, want %v", err, upstream)
	}
}

func TestNormalizeShifts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "results-envelope", input: `{"results": [{"a": 1}, {"b": 2}]}`, want: 2},
		{name: "shifts-envelope", input: `{"shifts": [{"a": 1}]}`, want: 1},
		{name: "bare-array", input: `[{"a": 1}, {"b": 2}, {"c": 3}]`, want: 3},
		{name: "non-objects-skipped", input: `[{"a": 1}, "noise", 42, null]`, want: 1},
		{name: "empty-envelope", input: `{"results": []}`, want: 0},
		{name: "unknown-shape", input: `{"data": "nope"}`, want: 0},
		{name: "garbage", input: `garbage`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeShifts([]byte(tt.input)); len(got) != tt.want {
				t.Fatalf("NormalizeShifts() len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
