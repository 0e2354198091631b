// OnCall 이벤트 -> 대상 채팅 라우팅
//
// 구성(routing table + fallback)은 프로세스 시작 시 한 번 만들어져
// 이후 불변이므로 잠금 없이 동시 호출 가능. 순수 조회만 수행 (I/O 없음).

package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// teamIDPaths - team_id 추출 우선순위
// 첫 번째로 비어있지 않은 값이 확정되면 이후 경로는 확인하지 않음
var teamIDPaths = [][]string{
	{"alert_group", "team_id"},
	{"team_id"},
	{"schedule", "team_id"},
}

// ChatRouter - team_id -> chat_id 매핑 + fallback
type ChatRouter struct {
	routes   map[string]string
	fallback string
}

// NewChatRouter 생성자
func NewChatRouter(routes map[string]string, fallback string) *ChatRouter {
	if routes == nil {
		routes = map[string]string{}
	}
	r := &ChatRouter{routes: routes, fallback: fallback}
	fb := fallback
	if fb == "" {
		fb = "none"
	}
	log.Info().Int("routes", len(routes)).Str("fallback", fb).Msg("ChatRouter initialized")
	return r
}

// Resolve - 이벤트의 대상 chat_id 결정
//
// team_id가 매핑에 있으면 해당 채팅, 없거나 미발견이면 fallback.
// fallback도 없으면 ("", false)를 반환하고 호출자가 라우팅 실패로 처리
func (r *ChatRouter) Resolve(event []byte) (string, bool) {
	teamID := extractTeamID(event)

	if teamID != "" {
		if chatID, ok := r.routes[teamID]; ok {
			log.Debug().Str("team_id", teamID).Str("chat_id", chatID).Msg("Resolved chat by team_id")
			return chatID, true
		}
		log.Warn().Str("team_id", teamID).Msg("team_id not found in routing table, using fallback")
	} else {
		log.Warn().Msg("No team_id found in event data, using fallback")
	}

	if r.fallback != "" {
		return r.fallback, true
	}
	return "", false
}

// ResolveTeam - team_id만으로 라우팅 (스케줄 조회 파이프라인용)
func (r *ChatRouter) ResolveTeam(teamID string) (string, bool) {
	if teamID == "" {
		return r.Resolve(nil)
	}
	event := []byte(fmt.Sprintf(`{"team_id":%q}`, teamID))
	return r.Resolve(event)
}

// Validate - chat_id가 UUID 형식인지 확인
// 잘못된 설정으로 전송을 시도하기 전에 걸러내는 용도
func (r *ChatRouter) Validate(chatID string) bool {
	if _, err := uuid.Parse(chatID); err != nil {
		log.Warn().Str("chat_id", chatID).Msg("Invalid chat_id format (not a UUID)")
		return false
	}
	return true
}

// Summary - 현재 라우팅 구성 리포트 (시작 시 로깅용)
func (r *ChatRouter) Summary() string {
	lines := []string{"Chat routing configuration (team_id -> chat_id):"}

	if len(r.routes) > 0 {
		teams := make([]string, 0, len(r.routes))
		for team := range r.routes {
			teams = append(teams, team)
		}
		sort.Strings(teams)
		for _, team := range teams {
			lines = append(lines, fmt.Sprintf("  %s -> %s", team, r.routes[team]))
		}
	} else {
		lines = append(lines, "  (no routes configured)")
	}

	if r.fallback != "" {
		lines = append(lines, "Fallback chat_id: "+r.fallback)
	} else {
		lines = append(lines, "Fallback: (none)")
	}
	return strings.Join(lines, "\n")
}

// extractTeamID - 경로 후보를 순서대로 시도 (숫자 team_id도 허용)
func extractTeamID(event []byte) string {
	if len(event) == 0 {
		return ""
	}
	for _, path := range teamIDPaths {
		value, dataType, _, err := jsonparser.Get(event, path...)
		if err != nil {
			continue
		}
		switch dataType {
		case jsonparser.String:
			if s, err := jsonparser.ParseString(value); err == nil && s != "" {
				return s
			}
		case jsonparser.Number:
			return string(value)
		}
	}
	return ""
}
