// 외부 Grafana OnCall API와 통신하는 클라이언트 정의
//
// 환경변수:
//   - GRAFANA_ONCALL_URL: OnCall API 베이스 URL
//   - GRAFANA_ONCALL_TOKEN: API 토큰 (Authorization 헤더로 전달)
//   - GRAFANA_ONCALL_TIMEOUT: 요청 타임아웃(초, 기본 10)
//
// URL/토큰 미설정은 구성 오류로 취급, 네트워크 호출 전에 ErrNotConfigured 반환

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/rs/zerolog/log"

	"github.com/oncall-gateway/backend/internal/config"
	"github.com/oncall-gateway/backend/internal/model"
)

// ErrNotConfigured - OnCall API URL 또는 토큰 미설정
var ErrNotConfigured = errors.New("grafana oncall url or token not configured")

// OnCallClient 구조체 정의
type OnCallClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// OnCallClient 객체 생성
func NewOnCallClient(cfg config.OnCallConfig) *OnCallClient {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &OnCallClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// FetchFinalShifts - 스케줄의 확정 시프트 목록 조회 (원본 JSON 그대로 반환)
//
// 응답 형태가 results/shifts/bare list로 제각각이라 파싱은 호출자 몫
func (c *OnCallClient) FetchFinalShifts(ctx context.Context, scheduleID, startDate, endDate string) ([]byte, error) {
	params := url.Values{}
	if startDate != "" {
		params.Set("start_date", startDate)
	}
	if endDate != "" {
		params.Set("end_date", endDate)
	}
	path := fmt.Sprintf("/api/v1/schedules/%s/final_shifts/", url.PathEscape(scheduleID))
	return c.get(ctx, path, params)
}

// FetchSchedule - 스케줄 메타데이터 조회
func (c *OnCallClient) FetchSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/v1/schedules/%s/", url.PathEscape(scheduleID)), nil)
	if err != nil {
		return nil, err
	}
	var schedule model.Schedule
	if err := json.Unmarshal(body, &schedule); err != nil {
		return nil, fmt.Errorf("failed to parse schedule response: %w", err)
	}
	if schedule.ID == "" {
		schedule.ID = scheduleID
	}
	return &schedule, nil
}

// FetchSchedules - 전체 스케줄 목록 조회
//
// 봉투(envelope) 정규화: results / schedules / data / bare list 모두 허용
func (c *OnCallClient) FetchSchedules(ctx context.Context) ([]model.Schedule, error) {
	body, err := c.get(ctx, "/api/v1/schedules/", nil)
	if err != nil {
		return nil, err
	}

	list := body
	for _, key := range []string{"results", "schedules", "data"} {
		if nested, dataType, _, err := jsonparser.Get(body, key); err == nil && dataType == jsonparser.Array {
			list = nested
			break
		}
	}

	var schedules []model.Schedule
	if err := json.Unmarshal(list, &schedules); err != nil {
		return nil, fmt.Errorf("failed to parse schedules response: %w", err)
	}
	return schedules, nil
}

// OnCall API GET 호출 공통 처리
func (c *OnCallClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.baseURL == "" || c.token == "" {
		return nil, ErrNotConfigured
	}

	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call oncall API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Int("status", resp.StatusCode).Str("url", fullURL).Msg("OnCall API returned non-2xx status")
		return nil, fmt.Errorf("oncall API returned status %d", resp.StatusCode)
	}
	return body, nil
}
