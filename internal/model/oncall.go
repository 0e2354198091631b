// Grafana OnCall 스케줄/시프트 조회 관련 구조체 정의
// handler, service, client 레이어에서 공통으로 사용

package model

import "encoding/json"

// Schedule - OnCall 스케줄 메타데이터
//
// team_id는 라우팅의 키로 사용 (없으면 fallback 채널로 전송)
type Schedule struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TeamID string `json:"team_id"`
}

// OnCallCurrentResponse - GET /api/oncall/current 응답
//
// Shift/Shifts는 업스트림 응답 그대로 전달 (필드명이 API 버전마다 달라서
// 구조체로 고정하지 않음)
type OnCallCurrentResponse struct {
	Status       string            `json:"status"`
	ScheduleID   string            `json:"schedule_id"`
	ScheduleName string            `json:"schedule_name"`
	TeamID       string            `json:"team_id"`
	Shift        json.RawMessage   `json:"shift" swaggertype:"object"`
	Shifts       []json.RawMessage `json:"shifts" swaggertype:"array,object"`
	SentToChat   bool              `json:"sent_to_chat"`
}

// OnCallShiftsResponse - GET /api/oncall/shifts 응답
// 응답에는 최대 10개의 시프트만 포함 (ShiftsCount는 전체 개수)
type OnCallShiftsResponse struct {
	Status       string            `json:"status"`
	ScheduleID   string            `json:"schedule_id"`
	ScheduleName string            `json:"schedule_name"`
	TeamID       string            `json:"team_id"`
	ShiftsCount  int               `json:"shifts_count"`
	Shifts       []json.RawMessage `json:"shifts" swaggertype:"array,object"`
	SentToChat   bool              `json:"sent_to_chat"`
}

// ScheduleListResponse - GET /api/oncall/schedules 응답
type ScheduleListResponse struct {
	Status    string     `json:"status"`
	Schedules []Schedule `json:"schedules"`
}
