// 웹훅 이벤트 전송 비즈니스 로직 정의
// handler에서 라우팅이 끝난 이벤트를 포맷팅해서 채팅으로 전송
//
// 처리 흐름:
//  1. Event Formatter로 알림 텍스트 렌더링 (항상 성공)
//  2. BotX로 1회 전송, 실패는 로그만 남기고 흡수
//     (호출자는 이미 202를 받았으므로 전송 결과를 통지할 곳이 없음)

package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oncall-gateway/backend/internal/format"
)

// chatSender - 채팅 전송 인터페이스
type chatSender interface {
	SendMessage(ctx context.Context, chatID uuid.UUID, body string) (string, error)
}

// WebhookService 구조체 정의
type WebhookService struct {
	sender chatSender
	events *format.EventFormatter
}

// WebhookService 객체 생성
func NewWebhookService(sender chatSender, events *format.EventFormatter) *WebhookService {
	return &WebhookService{sender: sender, events: events}
}

// Deliver - 이벤트 렌더링 후 대상 채팅으로 전송 (백그라운드 실행 전제)
//
// at-most-once, best-effort: 재시도/순서 보장 없음
func (s *WebhookService) Deliver(event []byte, chatID uuid.UUID) {
	eventType := format.EventType(event)
	groupID := format.AlertGroupID(event)

	body := s.events.Render(event)
	if body == "" {
		log.Warn().Str("event_type", eventType).Str("alert_group", groupID).
			Msg("Empty alert message generated, skipping send")
		return
	}

	syncID, err := s.sender.SendMessage(context.Background(), chatID, body)
	if err != nil {
		log.Error().Err(err).
			Str("event_type", eventType).
			Str("alert_group", groupID).
			Str("team_id", format.TeamID(event)).
			Str("chat_id", chatID.String()).
			Msg("Failed to send message to chat")
		return
	}

	log.Info().
		Str("event_type", eventType).
		Str("alert_group", groupID).
		Str("chat_id", chatID.String()).
		Str("sync_id", syncID).
		Msg("Event sent to chat")
}
