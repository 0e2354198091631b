package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oncall-gateway/backend/internal/format"
)

// maxWebhookBodySize - 웹훅 본문 최대 크기 (5 MB)
const maxWebhookBodySize = 5 << 20

// eventRouter - 라우팅 인터페이스
type eventRouter interface {
	Resolve(event []byte) (string, bool)
	Validate(chatID string) bool
}

// eventDeliverer - 백그라운드 전송 인터페이스
type eventDeliverer interface {
	Deliver(event []byte, chatID uuid.UUID)
}

// WebhookHandler - OnCall 웹훅 수신 핸들러
type WebhookHandler struct {
	router   eventRouter
	delivery eventDeliverer
}

func NewWebhookHandler(router eventRouter, delivery eventDeliverer) *WebhookHandler {
	return &WebhookHandler{router: router, delivery: delivery}
}

// OnCallWebhook godoc
// @Summary Receive a Grafana OnCall webhook event
// @Description Validates the event, resolves the destination chat by team id and schedules background delivery.
// @Tags webhook
// @Accept json
// @Produce json
// @Param request body object true "OnCall event payload"
// @Success 202 {object} model.WebhookAcceptedResponse
// @Failure 400,500 {object} model.ErrorResponse
// @Router /oncall/webhook [post]
func (h *WebhookHandler) OnCallWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodySize))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read webhook body")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "detail": "Invalid body"})
		return
	}

	// JSON 객체인지 검증 (배열/스칼라는 거부)
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Error().Err(err).Msg("Invalid JSON received in webhook")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "detail": "Invalid JSON"})
		return
	}

	// alert_group은 필수 (null/빈 객체도 없는 것으로 취급)
	if isEmptyField(envelope["alert_group"]) {
		log.Warn().Msg("Received event without alert_group")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing alert_group"})
		return
	}

	eventType := format.EventType(body)
	groupID := format.AlertGroupID(body)

	// 대상 채팅 결정
	chatID, ok := h.router.Resolve(body)
	if !ok {
		log.Error().
			Str("event_type", eventType).
			Str("alert_group", groupID).
			Str("team_id", format.TeamID(body)).
			Msg("Cannot determine target chat for event")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Cannot determine target chat (no routing configuration or fallback)",
		})
		return
	}

	// 잘못된 설정으로 전송을 시도하지 않도록 UUID 검증
	if !h.router.Validate(chatID) {
		log.Error().Str("chat_id", chatID).Msg("Target chat_id is not a valid UUID")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Invalid target chat_id"})
		return
	}

	chatUUID, err := uuid.Parse(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Invalid target chat_id"})
		return
	}

	log.Info().
		Str("event_type", eventType).
		Str("alert_group", groupID).
		Str("chat_id", chatID).
		Msg("Received oncall event")

	// 백그라운드 전송, 응답은 전송 결과와 무관
	go h.delivery.Deliver(body, chatUUID)

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "message": "Event is being processed"})
}

// isEmptyField - 필드가 없거나 null, {}, "" 인지 확인
func isEmptyField(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "{}", `""`:
		return true
	}
	return false
}
