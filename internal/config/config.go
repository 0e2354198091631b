package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Server  ServerConfig
	BotX    BotXConfig
	OnCall  OnCallConfig
	Routing RoutingConfig
	Format  FormatConfig
	Digest  DigestConfig
}

// ServerConfig - HTTP 서버 및 공통 설정
type ServerConfig struct {
	Addr           string
	LogLevel       string
	APISecret      string
	AllowedOrigins []string
}

// BotXConfig - eXpress(BotX) 봇 설정
//
// BotID와 대상 chat_id는 모두 UUID 형식이어야 전송 가능
type BotXConfig struct {
	BotID        string
	Host         string
	SecretKey    string
	WaitCallback bool
}

// OnCallConfig - Grafana OnCall API 설정
type OnCallConfig struct {
	BaseURL        string
	Token          string
	TimeoutSeconds int
}

// RoutingConfig - team_id -> chat_id 라우팅 설정
//
// TableJSON 예시: {"backend-team": "uuid-1", "frontend-team": "uuid-2"}
// FallbackChatID는 매칭되는 팀이 없을 때 사용 (미설정 시 라우팅 실패)
type RoutingConfig struct {
	TableJSON      string
	FallbackChatID string
}

// FormatConfig - 메시지 포맷팅 설정
type FormatConfig struct {
	ExtGrafanaURL string
	LocalTimezone string
}

// DigestConfig - 일일 당직 요약 전송 설정 (CronSpec 미설정 시 비활성화)
type DigestConfig struct {
	CronSpec    string
	ScheduleIDs []string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr:           getenv("LISTEN_ADDR", ":8080"),
			LogLevel:       getenv("LOG_LEVEL", "info"),
			APISecret:      os.Getenv("API_SECRET"),
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		BotX: BotXConfig{
			BotID:        os.Getenv("BOTX_BOT_ID"),
			Host:         getenv("BOTX_HOST", "http://localhost:8080"),
			SecretKey:    os.Getenv("BOTX_SECRET_KEY"),
			WaitCallback: getenvBool("BOTX_WAIT_CALLBACK", false),
		},
		OnCall: OnCallConfig{
			BaseURL:        os.Getenv("GRAFANA_ONCALL_URL"),
			Token:          os.Getenv("GRAFANA_ONCALL_TOKEN"),
			TimeoutSeconds: getenvInt("GRAFANA_ONCALL_TIMEOUT", 10),
		},
		Routing: RoutingConfig{
			TableJSON:      os.Getenv("CHAT_ROUTING_CONFIG"),
			FallbackChatID: os.Getenv("TARGET_CHAT_ID"),
		},
		Format: FormatConfig{
			ExtGrafanaURL: os.Getenv("EXT_GRAFANA_URL"),
			LocalTimezone: os.Getenv("LOCAL_TIMEZONE"),
		},
		Digest: DigestConfig{
			CronSpec:    os.Getenv("ONCALL_DIGEST_CRON"),
			ScheduleIDs: splitList(os.Getenv("ONCALL_DIGEST_SCHEDULES")),
		},
	}
}

// ChatRouting - CHAT_ROUTING_CONFIG(JSON 문자열)를 맵으로 파싱
//
// JSON 객체가 아니거나 파싱에 실패하면 빈 맵 반환 (fallback만으로 동작)
func (r RoutingConfig) ChatRouting() map[string]string {
	if r.TableJSON == "" {
		return map[string]string{}
	}
	routing := map[string]string{}
	if err := json.Unmarshal([]byte(r.TableJSON), &routing); err != nil {
		log.Warn().Err(err).Msg("Failed to parse CHAT_ROUTING_CONFIG as JSON, ignoring")
		return map[string]string{}
	}
	return routing
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
