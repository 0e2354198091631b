package main

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oncall-gateway/backend/internal/client"
	"github.com/oncall-gateway/backend/internal/config"
	"github.com/oncall-gateway/backend/internal/format"
	"github.com/oncall-gateway/backend/internal/handler"
	"github.com/oncall-gateway/backend/internal/service"
)

// @title Grafana OnCall Gateway API
// @version 1.0
// @description Routes Grafana OnCall webhook events to team chats and exposes on-call schedule queries.
// @BasePath /
func main() {
	// .env 파일이 있으면 로드 (없어도 무시)
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg.Server.LogLevel)

	loc := loadLocation(cfg.Format.LocalTimezone)
	clock := format.NewClock(loc)
	events := format.NewEventFormatter(clock, cfg.Format.ExtGrafanaURL)
	schedules := format.NewScheduleFormatter(clock)

	// 라우터는 기동 시점에 한 번 구성해서 주입
	router := service.NewChatRouter(cfg.Routing.ChatRouting(), cfg.Routing.FallbackChatID)
	log.Info().Msg(router.Summary())

	botx := client.NewBotXClient(cfg.BotX)
	oncall := client.NewOnCallClient(cfg.OnCall)

	webhookService := service.NewWebhookService(botx, events)
	oncallService := service.NewOnCallService(oncall, router, botx, schedules)

	digest := service.NewDigestService(oncallService, cfg.Digest)
	if digest.Enabled() {
		if err := digest.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start on-call digest scheduler")
		}
		defer digest.Stop()
	}

	webhookHandler := handler.NewWebhookHandler(router, webhookService)
	oncallHandler := handler.NewOnCallHandler(oncallService)

	engine := gin.Default()
	engine.Use(handler.CORSMiddleware(cfg.Server.AllowedOrigins, false))

	// 헬스체크 및 문서
	engine.GET("/ping", handler.Ping)
	engine.GET("/", handler.Root)
	engine.GET("/health", handler.Health(botx))
	engine.GET("/openapi.json", handler.OpenAPIDoc)

	// OnCall 웹훅 수신 (외부 시스템 호출이므로 API 시크릿 미적용)
	engine.POST("/oncall/webhook", webhookHandler.OnCallWebhook)

	// 조회 API
	api := engine.Group("/api", handler.AuthMiddleware(cfg.Server.APISecret))
	{
		api.GET("/oncall/current", oncallHandler.CurrentOnCall)
		api.GET("/oncall/shifts", oncallHandler.Shifts)
		api.GET("/oncall/schedules", oncallHandler.Schedules)
	}

	log.Info().Str("addr", cfg.Server.Addr).Msg("Starting OnCall gateway")
	if err := engine.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// loadLocation - LOCAL_TIMEZONE 파싱, 실패 시 UTC
func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Str("timezone", name).Err(err).Msg("Unknown LOCAL_TIMEZONE, falling back to UTC")
		return time.UTC
	}
	return loc
}
