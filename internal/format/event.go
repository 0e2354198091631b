// OnCall 웹훅 이벤트 -> 채팅 알림 텍스트 변환
//
// 업스트림 페이로드는 스키마가 불안정하므로 (같은 값이 여러 위치/키로
// 도착) 모든 필드 추출은 "경로 후보 목록을 순서대로 시도"하는 방식으로
// 구현. 우선순위가 코드에 데이터로 드러나야 감사/테스트 가능.
//
// Render는 전체 함수(total function): 어떤 입력에도 panic 없이 항상
// 문자열을 반환.

package format

import (
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/rs/zerolog/log"
)

// eventStyle - 이벤트 타입별 (이모지, 상태 라벨) 쌍
type eventStyle struct {
	Glyph string
	Label string
}

// eventStyles - event.type (소문자) -> 스타일 고정 테이블
// 매칭 실패 시 ❓ + 원본 태그 대문자화로 렌더링
var eventStyles = map[string]eventStyle{
	"escalation":    {"🚨", "Escalation"},
	"acknowledge":   {"🟡", "Acknowledged"},
	"acknowledged":  {"🟡", "Acknowledged"},
	"unacknowledge": {"⚪", "Unacknowledged"},
	"unresolve":     {"🔴", "Reopened"},
	"resolve":       {"🟢", "Resolved"},
	"resolved":      {"🟢", "Resolved"},
	"silence":       {"🔕", "Silenced"},
	"unsilence":     {"🔔", "Unsilenced"},
	"firing":        {"🚨", "Firing"},
}

// eventFields - 이벤트 타입별로 어떤 필드 블록을 보여줄지 결정
//
// 라벨/카운트 블록은 escalation에서만 표시 (상태 전환 알림에는
// 중복 노이즈). By 라인은 사람이 일으킨 전환에만 표시.
type eventFields struct {
	Start   bool
	Resolve bool
	Counts  bool
	Labels  bool
	ByLine  bool
}

var eventVisibility = map[string]eventFields{
	"escalation":    {Start: true, Counts: true, Labels: true},
	"resolve":       {Start: true, Resolve: true, ByLine: true},
	"resolved":      {Start: true, Resolve: true, ByLine: true},
	"acknowledge":   {ByLine: true},
	"acknowledged":  {ByLine: true},
	"unacknowledge": {ByLine: true},
	"unresolve":     {ByLine: true},
	"silence":       {Start: true, Resolve: true, ByLine: true},
	"unsilence":     {ByLine: true},
}

// 필드별 경로 후보 (우선순위 순)
var (
	titlePaths = [][]string{
		{"alert_payload", "alerts", "[0]", "labels", "alertname"},
		{"alert_group", "alerts", "[0]", "labels", "alertname"},
		{"alert_payload", "groupLabels", "alertname"},
		{"alert_group", "groupLabels", "alertname"},
		{"alert_payload", "commonLabels", "alertname"},
		{"alert_group", "commonLabels", "alertname"},
		{"alert_group", "title"},
		{"alert_group", "name"},
	}
	summaryPaths = [][]string{
		{"alert_payload", "alerts", "[0]", "annotations", "summary"},
		{"alert_group", "alerts", "[0]", "annotations", "summary"},
		{"alert_payload", "commonAnnotations", "summary"},
		{"alert_group", "commonAnnotations", "summary"},
	}
	startPaths = [][]string{
		{"alert_group", "created_at"},
		{"alert_payload", "alerts", "[0]", "startsAt"},
		{"alert_group", "alerts", "[0]", "startsAt"},
	}
	silenceStartPaths = [][]string{
		{"event", "time"},
		{"alert_group", "silenced_at"},
	}
	usernamePaths = [][]string{
		{"user", "username"},
		{"user", "email"},
	}
	groupLabelPaths = [][]string{
		{"alert_payload", "groupLabels"},
		{"alert_group", "groupLabels"},
	}
	commonLabelPaths = [][]string{
		{"alert_payload", "commonLabels"},
		{"alert_group", "commonLabels"},
	}
	annotationPaths = [][]string{
		{"alert_payload", "commonAnnotations"},
		{"alert_group", "commonAnnotations"},
	}
	firingCountPaths = [][]string{
		{"alert_payload", "numFiring"},
		{"alert_payload", "num_firing"},
		{"alert_group", "numFiring"},
	}
	resolvedCountPaths = [][]string{
		{"alert_payload", "numResolved"},
		{"alert_payload", "num_resolved"},
		{"alert_group", "numResolved"},
	}
)

// EventType - event.type (소문자), 없으면 alert_group.state (소문자)
func EventType(event []byte) string {
	if v, err := jsonparser.GetString(event, "event", "type"); err == nil && v != "" {
		return strings.ToLower(v)
	}
	if v, err := jsonparser.GetString(event, "alert_group", "state"); err == nil && v != "" {
		return strings.ToLower(v)
	}
	return ""
}

// AlertGroupID - 알림 그룹 ID (문자열/숫자 모두 허용)
func AlertGroupID(event []byte) string {
	return stringAt(event, "alert_group", "id")
}

// TeamID - 알림 그룹의 팀 ID (딥링크 및 로깅용)
func TeamID(event []byte) string {
	if v := stringAt(event, "alert_group", "team_id"); v != "" {
		return v
	}
	return stringAt(event, "team_id")
}

// EventFormatter - 웹훅 이벤트를 사람이 읽을 알림 텍스트로 변환
type EventFormatter struct {
	clock   *Clock
	baseURL string
}

// NewEventFormatter 생성자
// baseURL이 비어있으면 딥링크 라인 전체 생략
func NewEventFormatter(clock *Clock, baseURL string) *EventFormatter {
	return &EventFormatter{
		clock:   clock,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Render - 이벤트 전체를 알림 텍스트로 렌더링
//
// 절대 에러를 반환하지 않음: 내부 실패는 대체 문구로 강등
func (f *EventFormatter) Render(event []byte) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Event formatter panicked, degrading to placeholder")
			msg = "❌ Error processing alert"
		}
	}()

	eventType := EventType(event)
	style, known := eventStyles[eventType]
	if !known {
		style = eventStyle{Glyph: "❓", Label: capitalize(eventType)}
		if style.Label == "" {
			style.Label = "Unknown"
		}
	}
	fields := eventVisibility[eventType]

	var b strings.Builder

	// 제목 라인: <glyph> #<id> - <title> (<summary>)
	b.WriteString(style.Glyph)
	b.WriteString(" #")
	b.WriteString(AlertGroupID(event))
	if title := firstString(event, titlePaths); title != "" {
		b.WriteString(" - ")
		b.WriteString(title)
	}
	if summary := firstString(event, summaryPaths); summary != "" {
		b.WriteString(" (")
		b.WriteString(summary)
		b.WriteString(")")
	}
	b.WriteString("\nStatus: ")
	b.WriteString(style.Label)

	// 시간 블록 (이벤트 타입별 규칙)
	if fields.Start {
		if start := f.startTime(event, eventType); start != "" {
			b.WriteString("\nStart: ")
			b.WriteString(start)
		}
	}
	if fields.Resolve {
		if resolve := f.resolveTime(event, eventType); resolve != "" {
			b.WriteString("\nResolve: ")
			b.WriteString(resolve)
		}
	}

	// 카운트 라인 (escalation 전용)
	if fields.Counts {
		fmt.Fprintf(&b, "\nAlerts in group: %d / Firing: %d / Resolved: %d",
			firstInt(event, [][]string{{"alert_group", "alerts_count"}}),
			firstInt(event, firingCountPaths),
			firstInt(event, resolvedCountPaths),
		)
	}

	// 라벨 블록 (escalation 전용)
	if fields.Labels {
		writeObjectBlock(&b, event, "Group Labels:", false, groupLabelPaths)
		writeObjectBlock(&b, event, "Common Labels:", false, commonLabelPaths)
	}

	// 어노테이션은 이벤트 타입과 무관하게 항상 표시
	writeObjectBlock(&b, event, "Annotations:", true, annotationPaths)

	if fields.ByLine {
		if username := firstString(event, usernamePaths); username != "" {
			b.WriteString("\nBy: ")
			b.WriteString(username)
		}
	}

	f.writeLinks(&b, event)
	return b.String()
}

// startTime - Start 라인의 값 유도
// silence는 event.time -> silenced_at -> escalation 방식 순으로 시도
func (f *EventFormatter) startTime(event []byte, eventType string) string {
	if eventType == "silence" {
		if raw := firstString(event, silenceStartPaths); raw != "" {
			return f.clock.EventTime(raw)
		}
	}
	raw := firstString(event, startPaths)
	if raw == "" {
		return ""
	}
	return f.clock.EventTime(raw)
}

// resolveTime - Resolve 라인의 값 유도
func (f *EventFormatter) resolveTime(event []byte, eventType string) string {
	var raw string
	if eventType == "silence" {
		raw = stringAt(event, "event", "until")
	} else {
		raw = stringAt(event, "alert_group", "resolved_at")
	}
	if raw == "" {
		return ""
	}
	return f.clock.EventTime(raw)
}

// writeLinks - 알림 그룹 딥링크 2개 (base URL 설정 시에만)
func (f *EventFormatter) writeLinks(b *strings.Builder, event []byte) {
	if f.baseURL == "" {
		return
	}
	if groupID := AlertGroupID(event); groupID != "" {
		fmt.Fprintf(b, "\nAlert group: %s/alert-groups/%s", f.baseURL, groupID)
	}
	if teamID := TeamID(event); teamID != "" {
		fmt.Fprintf(b, "\nAll alert groups: %s/alert-groups?team_id=%s", f.baseURL, teamID)
	} else {
		fmt.Fprintf(b, "\nAll alert groups: %s/alert-groups", f.baseURL)
	}
}

// firstString - 경로 후보를 순서대로 시도, 첫 비어있지 않은 문자열 반환
func firstString(data []byte, paths [][]string) string {
	for _, path := range paths {
		if v, err := jsonparser.GetString(data, path...); err == nil && v != "" {
			return v
		}
	}
	return ""
}

// firstInt - 경로 후보를 순서대로 시도, 첫 매칭되는 정수 반환 (없으면 0)
func firstInt(data []byte, paths [][]string) int64 {
	for _, path := range paths {
		if v, err := jsonparser.GetInt(data, path...); err == nil {
			return v
		}
	}
	return 0
}

// stringAt - 단일 경로에서 문자열 추출 (숫자 값도 문자열로 허용)
func stringAt(data []byte, path ...string) string {
	value, dataType, _, err := jsonparser.Get(data, path...)
	if err != nil {
		return ""
	}
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return ""
		}
		return s
	case jsonparser.Number:
		return string(value)
	default:
		return ""
	}
}

// writeObjectBlock - 첫 번째로 존재하는 비어있지 않은 객체를
// "header\n  key: value" 블록으로 렌더링
//
// jsonparser.ObjectEach는 문서 내 키 순서를 보존하므로 같은 이벤트를
// 두 번 렌더링해도 바이트 단위로 동일한 출력이 나옴 (Go 맵 순회와 달리)
func writeObjectBlock(b *strings.Builder, data []byte, header string, quoted bool, paths [][]string) {
	for _, path := range paths {
		obj, dataType, _, err := jsonparser.Get(data, path...)
		if err != nil || dataType != jsonparser.Object {
			continue
		}
		var lines []string
		_ = jsonparser.ObjectEach(obj, func(key, value []byte, valueType jsonparser.ValueType, _ int) error {
			val := string(value)
			if valueType == jsonparser.String {
				if s, err := jsonparser.ParseString(value); err == nil {
					val = s
				}
			}
			if quoted {
				lines = append(lines, fmt.Sprintf("  %q: %q", string(key), val))
			} else {
				lines = append(lines, fmt.Sprintf("  %s: %s", string(key), val))
			}
			return nil
		})
		if len(lines) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(header)
		for _, line := range lines {
			b.WriteString("\n")
			b.WriteString(line)
		}
		return
	}
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
