// 당직 조회 비즈니스 로직 정의
//
// 처리 흐름:
//  1. 스케줄 메타데이터 조회 (이름, team_id)
//  2. 확정 시프트 조회 + 응답 봉투 정규화
//  3. (옵션) team_id로 대상 채팅 결정 후 전송
//     - 시프트가 여러 개면 일일 요약 형태, 1개면 단건 형태
//     - 전송 실패는 조회 응답에 영향 없음 (sent_to_chat=false)

package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/buger/jsonparser"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oncall-gateway/backend/internal/format"
	"github.com/oncall-gateway/backend/internal/model"
)

// ErrNoShifts - 스케줄에 시프트가 하나도 없음 (404로 매핑)
var ErrNoShifts = errors.New("no shifts found")

// maxShiftsInResponse - shifts 응답에 포함할 최대 시프트 수
const maxShiftsInResponse = 10

// oncallFetcher - OnCall API 인터페이스
type oncallFetcher interface {
	FetchFinalShifts(ctx context.Context, scheduleID, startDate, endDate string) ([]byte, error)
	FetchSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error)
	FetchSchedules(ctx context.Context) ([]model.Schedule, error)
}

// OnCallService 구조체 정의
type OnCallService struct {
	oncall    oncallFetcher
	router    *ChatRouter
	sender    chatSender
	schedules *format.ScheduleFormatter
}

// OnCallService 객체 생성
func NewOnCallService(oncall oncallFetcher, router *ChatRouter, sender chatSender, schedules *format.ScheduleFormatter) *OnCallService {
	return &OnCallService{
		oncall:    oncall,
		router:    router,
		sender:    sender,
		schedules: schedules,
	}
}

// CurrentOnCall - 현재 당직자 조회 (시프트 0개면 ErrNoShifts)
func (s *OnCallService) CurrentOnCall(ctx context.Context, scheduleID, startDate, endDate string, sendToChat bool) (*model.OnCallCurrentResponse, error) {
	schedule, err := s.oncall.FetchSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	shiftData, err := s.oncall.FetchFinalShifts(ctx, scheduleID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	shifts := NormalizeShifts(shiftData)
	if len(shifts) == 0 {
		return nil, ErrNoShifts
	}

	sent := false
	if sendToChat {
		sent = s.sendShifts(ctx, schedule, shifts)
	}

	return &model.OnCallCurrentResponse{
		Status:       "ok",
		ScheduleID:   scheduleID,
		ScheduleName: schedule.Name,
		TeamID:       schedule.TeamID,
		Shift:        shifts[0],
		Shifts:       shifts,
		SentToChat:   sent,
	}, nil
}

// Shifts - 기간 내 시프트 목록 조회 (빈 목록이어도 에러 아님)
func (s *OnCallService) Shifts(ctx context.Context, scheduleID, startDate, endDate string, sendToChat bool) (*model.OnCallShiftsResponse, error) {
	schedule, err := s.oncall.FetchSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	shiftData, err := s.oncall.FetchFinalShifts(ctx, scheduleID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	shifts := NormalizeShifts(shiftData)

	sent := false
	if sendToChat && len(shifts) > 0 {
		sent = s.sendDaySummary(ctx, schedule, shifts)
	}

	capped := shifts
	if len(capped) > maxShiftsInResponse {
		capped = capped[:maxShiftsInResponse]
	}

	return &model.OnCallShiftsResponse{
		Status:       "ok",
		ScheduleID:   scheduleID,
		ScheduleName: schedule.Name,
		TeamID:       schedule.TeamID,
		ShiftsCount:  len(shifts),
		Shifts:       capped,
		SentToChat:   sent,
	}, nil
}

// Schedules - 전체 스케줄 목록
func (s *OnCallService) Schedules(ctx context.Context) ([]model.Schedule, error) {
	return s.oncall.FetchSchedules(ctx)
}

// sendShifts - 시프트 수에 따라 단건/일일 요약 형태를 골라 전송
func (s *OnCallService) sendShifts(ctx context.Context, schedule *model.Schedule, shifts []json.RawMessage) bool {
	if len(shifts) > 1 {
		return s.sendDaySummary(ctx, schedule, shifts)
	}
	text := s.schedules.RenderCurrent(shifts[0], schedule.Name)
	return s.sendToTeamChat(ctx, schedule, text)
}

// sendDaySummary - 일일 당직 요약 전송
func (s *OnCallService) sendDaySummary(ctx context.Context, schedule *model.Schedule, shifts []json.RawMessage) bool {
	records := make([][]byte, len(shifts))
	for i, shift := range shifts {
		records[i] = shift
	}
	return s.sendToTeamChat(ctx, schedule, s.schedules.RenderDaySummary(records))
}

// sendToTeamChat - 스케줄의 team_id로 채팅을 찾아 전송
func (s *OnCallService) sendToTeamChat(ctx context.Context, schedule *model.Schedule, text string) bool {
	chatID, ok := s.router.ResolveTeam(schedule.TeamID)
	if !ok {
		log.Warn().Str("team_id", schedule.TeamID).Str("schedule_id", schedule.ID).
			Msg("No target chat found for schedule team")
		return false
	}
	if !s.router.Validate(chatID) {
		log.Error().Str("chat_id", chatID).Str("schedule_id", schedule.ID).
			Msg("Resolved chat_id is not a valid UUID, skipping send")
		return false
	}

	chatUUID, err := uuid.Parse(chatID)
	if err != nil {
		return false
	}
	if _, err := s.sender.SendMessage(ctx, chatUUID, text); err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Str("schedule_id", schedule.ID).
			Msg("Failed to send oncall info to chat")
		return false
	}

	log.Info().Str("chat_id", chatID).Str("schedule_id", schedule.ID).Msg("Sent oncall info to chat")
	return true
}

// NormalizeShifts - 시프트 응답 봉투 정규화
//
// 허용 형태: {"results": [...]}, {"shifts": [...]}, bare [...]
func NormalizeShifts(data []byte) []json.RawMessage {
	var shifts []json.RawMessage

	list := data
	if _, dataType, _, err := jsonparser.Get(data); err != nil || dataType != jsonparser.Array {
		found := false
		for _, key := range []string{"results", "shifts"} {
			if nested, dataType, _, err := jsonparser.Get(data, key); err == nil && dataType == jsonparser.Array {
				list = nested
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}

	_, _ = jsonparser.ArrayEach(list, func(value []byte, valueType jsonparser.ValueType, _ int, _ error) {
		if valueType == jsonparser.Object {
			shift := make(json.RawMessage, len(value))
			copy(shift, value)
			shifts = append(shifts, shift)
		}
	})
	return shifts
}
