// 외부 eXpress(BotX) API와 통신하는 클라이언트 정의
//
// 환경변수:
//   - BOTX_BOT_ID: 봇 ID (UUID)
//   - BOTX_HOST: BotX API 호스트 (예: https://cts.example.ru)
//   - BOTX_SECRET_KEY: 봇 시크릿 키
//   - BOTX_WAIT_CALLBACK: 전송 후 콜백 대기 여부
//
// 전송 결과로 sync_id를 돌려받아 전달 추적에 사용

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oncall-gateway/backend/internal/config"
)

// BotXClient 구조체 정의
type BotXClient struct {
	botID        uuid.UUID
	host         string
	secretKey    string
	waitCallback bool
	httpClient   *http.Client
}

// botxNotification - 알림 본문
type botxNotification struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}

// botxMessage - 전송 요청 페이로드
type botxMessage struct {
	GroupChatID  string           `json:"group_chat_id"`
	BotID        string           `json:"bot_id"`
	Notification botxNotification `json:"notification"`
	WaitCallback bool             `json:"wait_for_callback,omitempty"`
}

// botxResponse - 전송 응답
type botxResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Result struct {
		SyncID string `json:"sync_id"`
	} `json:"result"`
}

// BotXClient 객체 생성
// BotID가 UUID가 아니면 IsConfigured가 false를 반환 (전송 시도 차단)
func NewBotXClient(cfg config.BotXConfig) *BotXClient {
	botID, err := uuid.Parse(cfg.BotID)
	if err != nil && cfg.BotID != "" {
		log.Error().Str("bot_id", cfg.BotID).Msg("Invalid BOTX_BOT_ID (not a UUID)")
	}
	return &BotXClient{
		botID:        botID,
		host:         cfg.Host,
		secretKey:    cfg.SecretKey,
		waitCallback: cfg.WaitCallback,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Bot ID, Host, Secret Key가 모두 설정되어 있는지 체크
func (c *BotXClient) IsConfigured() bool {
	return c.botID != uuid.Nil && c.host != "" && c.secretKey != ""
}

// SendMessage - 지정한 채팅으로 메시지 1회 전송, sync_id 반환
func (c *BotXClient) SendMessage(ctx context.Context, chatID uuid.UUID, body string) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("botx bot id, host or secret key not configured")
	}

	msg := botxMessage{
		GroupChatID:  chatID.String(),
		BotID:        c.botID.String(),
		Notification: botxNotification{Status: "ok", Body: body},
		WaitCallback: c.waitCallback,
	}

	resp, err := c.send(ctx, msg)
	if err != nil {
		return "", err
	}
	return resp.Result.SyncID, nil
}

// BotX API 호출
func (c *BotXClient) send(ctx context.Context, msg botxMessage) (*botxResponse, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	url := c.host + "/api/v3/botx/notification/callback/direct"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var botxResp botxResponse
	if err := json.Unmarshal(respBody, &botxResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("botx API returned status %d: %s", resp.StatusCode, botxResp.Reason)
	}
	if botxResp.Status != "ok" {
		return nil, fmt.Errorf("botx API error: %s", botxResp.Reason)
	}
	return &botxResp, nil
}
