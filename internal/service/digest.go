// 일일 당직 요약 자동 전송
//
// ONCALL_DIGEST_CRON이 설정된 경우에만 동작. 지정된 스케줄마다
// 조회 파이프라인을 전송 모드로 실행해서 팀 채팅에 요약을 게시.

package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/oncall-gateway/backend/internal/config"
	"github.com/oncall-gateway/backend/internal/model"
)

// digestTimeout - 스케줄 1건 처리 제한 시간
const digestTimeout = 30 * time.Second

// oncallQuerier - 다이제스트가 사용하는 조회 파이프라인 인터페이스
type oncallQuerier interface {
	CurrentOnCall(ctx context.Context, scheduleID, startDate, endDate string, sendToChat bool) (*model.OnCallCurrentResponse, error)
}

// DigestService 구조체 정의
type DigestService struct {
	oncall      oncallQuerier
	cron        *cron.Cron
	spec        string
	scheduleIDs []string
}

// DigestService 객체 생성
func NewDigestService(oncall oncallQuerier, cfg config.DigestConfig) *DigestService {
	return &DigestService{
		oncall:      oncall,
		cron:        cron.New(),
		spec:        cfg.CronSpec,
		scheduleIDs: cfg.ScheduleIDs,
	}
}

// Enabled - cron 스펙과 스케줄 목록이 모두 설정됐는지
func (s *DigestService) Enabled() bool {
	return s.spec != "" && len(s.scheduleIDs) > 0
}

// Start - cron 잡 등록 및 시작
func (s *DigestService) Start() error {
	if !s.Enabled() {
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("cron", s.spec).Strs("schedules", s.scheduleIDs).Msg("OnCall digest scheduler started")
	return nil
}

// Stop - 예약된 잡 중단
func (s *DigestService) Stop() {
	s.cron.Stop()
}

// run - 설정된 모든 스케줄의 당직 요약 전송
func (s *DigestService) run() {
	for _, scheduleID := range s.scheduleIDs {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		resp, err := s.oncall.CurrentOnCall(ctx, scheduleID, "", "", true)
		cancel()

		if err != nil {
			log.Error().Err(err).Str("schedule_id", scheduleID).Msg("Digest run failed for schedule")
			continue
		}
		log.Info().Str("schedule_id", scheduleID).Bool("sent", resp.SentToChat).Msg("Digest processed schedule")
	}
}
