package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/oncall-gateway/backend/internal/client"
	"github.com/oncall-gateway/backend/internal/model"
	"github.com/oncall-gateway/backend/internal/service"
)

// oncallService - 서비스 인터페이스
type oncallService interface {
	CurrentOnCall(ctx context.Context, scheduleID, startDate, endDate string, sendToChat bool) (*model.OnCallCurrentResponse, error)
	Shifts(ctx context.Context, scheduleID, startDate, endDate string, sendToChat bool) (*model.OnCallShiftsResponse, error)
	Schedules(ctx context.Context) ([]model.Schedule, error)
}

// OnCallHandler - 당직 조회 관련 핸들러
type OnCallHandler struct {
	svc oncallService
}

func NewOnCallHandler(svc oncallService) *OnCallHandler {
	return &OnCallHandler{svc: svc}
}

// CurrentOnCall godoc
// @Summary Get the current on-call person for a schedule
// @Tags oncall
// @Produce json
// @Param schedule_id query string true "OnCall schedule ID"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param send_to_chat query bool false "Send the result to the team chat (default true)"
// @Success 200 {object} model.OnCallCurrentResponse
// @Failure 400,404,500 {object} model.ErrorResponse
// @Router /api/oncall/current [get]
func (h *OnCallHandler) CurrentOnCall(c *gin.Context) {
	scheduleID := c.Query("schedule_id")
	if scheduleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "detail": "schedule_id is required"})
		return
	}

	resp, err := h.svc.CurrentOnCall(
		c.Request.Context(),
		scheduleID,
		c.Query("start_date"),
		c.Query("end_date"),
		boolQuery(c, "send_to_chat", true),
	)
	if err != nil {
		h.writeError(c, scheduleID, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Shifts godoc
// @Summary Get on-call shifts for a schedule over a period
// @Description Returns up to 10 shifts; an empty period yields a zero count, not 404.
// @Tags oncall
// @Produce json
// @Param schedule_id query string true "OnCall schedule ID"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param send_to_chat query bool false "Send a day summary to the team chat (default false)"
// @Success 200 {object} model.OnCallShiftsResponse
// @Failure 400,500 {object} model.ErrorResponse
// @Router /api/oncall/shifts [get]
func (h *OnCallHandler) Shifts(c *gin.Context) {
	scheduleID := c.Query("schedule_id")
	if scheduleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "detail": "schedule_id is required"})
		return
	}

	resp, err := h.svc.Shifts(
		c.Request.Context(),
		scheduleID,
		c.Query("start_date"),
		c.Query("end_date"),
		boolQuery(c, "send_to_chat", false),
	)
	if err != nil {
		h.writeError(c, scheduleID, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Schedules godoc
// @Summary List all OnCall schedules
// @Tags oncall
// @Produce json
// @Success 200 {object} model.ScheduleListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/oncall/schedules [get]
func (h *OnCallHandler) Schedules(c *gin.Context) {
	schedules, err := h.svc.Schedules(c.Request.Context())
	if err != nil {
		h.writeError(c, "", err)
		return
	}
	c.JSON(http.StatusOK, model.ScheduleListResponse{Status: "ok", Schedules: schedules})
}

// writeError - 에러 분류에 따른 상태 코드 매핑
//
// ErrNoShifts -> 404, 구성 오류/업스트림 오류 -> 500
func (h *OnCallHandler) writeError(c *gin.Context, scheduleID string, err error) {
	switch {
	case errors.Is(err, service.ErrNoShifts):
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"detail": fmt.Sprintf("No shifts found for schedule %s", scheduleID),
		})
	case errors.Is(err, client.ErrNotConfigured):
		log.Error().Err(err).Msg("OnCall API is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "detail": "OnCall API is not configured"})
	default:
		log.Error().Err(err).Str("schedule_id", scheduleID).Msg("OnCall query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "detail": "Internal server error"})
	}
}

// boolQuery - bool 쿼리 파라미터 (파싱 실패 시 기본값)
func boolQuery(c *gin.Context, name string, fallback bool) bool {
	val := c.Query(name)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
