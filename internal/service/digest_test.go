package service

import (
	"context"
	"errors"
	"testing"

	"github.com/oncall-gateway/backend/internal/config"
	"github.com/oncall-gateway/backend/internal/model"
)

type stubQuerier struct {
	calls []string
	err   error
}

func (s *stubQuerier) CurrentOnCall(_ context.Context, scheduleID, _, _ string, _ bool) (*model.OnCallCurrentResponse, error) {
	s.calls = append(s.calls, scheduleID)
	if s.err != nil {
		return nil, s.err
	}
	return &model.OnCallCurrentResponse{Status: "ok", SentToChat: true}, nil
}

func TestDigestEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DigestConfig
		want bool
	}{
		{name: "configured", cfg: config.DigestConfig{CronSpec: "0 9 * * *", ScheduleIDs: []string{"S1"}}, want: true},
		{name: "no-cron", cfg: config.DigestConfig{ScheduleIDs: []string{"S1"}}, want: false},
		{name: "no-schedules", cfg: config.DigestConfig{CronSpec: "0 9 * * *"}, want: false},
		{name: "empty", cfg: config.DigestConfig{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewDigestService(&stubQuerier{}, tt.cfg).Enabled(); got != tt.want {
				t.Fatalf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDigestRunCoversAllSchedules(t *testing.T) {
	querier := &stubQuerier{}
	svc := NewDigestService(querier, config.DigestConfig{CronSpec: "0 9 * * *", ScheduleIDs: []string{"S1", "S2", "S3"}})

	svc.run()

	if len(querier.calls) != 3 || querier.calls[0] != "S1" || querier.calls[2] != "S3" {
		t.Fatalf("run() queried %v", querier.calls)
	}
}

// 한 스케줄의 실패가 나머지 스케줄 처리를 막지 않음
func TestDigestRunContinuesOnError(t *testing.T) {
	querier := &stubQuerier{err: errors.New("oncall down")}
	svc := NewDigestService(querier, config.DigestConfig{CronSpec: "0 9 * * *", ScheduleIDs: []string{"S1", "S2"}})

	svc.run()

	if len(querier.calls) != 2 {
		t.Fatalf("run() queried %d schedules, want 2", len(querier.calls))
	}
}

func TestDigestStartRejectsBadCronSpec(t *testing.T) {
	svc := NewDigestService(&stubQuerier{}, config.DigestConfig{CronSpec: "not a cron", ScheduleIDs: []string{"S1"}})

	if err := svc.Start(); err == nil {
		t.Fatal("Start() accepted an invalid cron spec")
	}
}
