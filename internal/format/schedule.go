// 당직 스케줄 조회 결과 -> 채팅 텍스트 변환
//
// 시프트 레코드는 스케줄러 API 버전에 따라 필드명이 다름:
// 시작/종료 시각도, 담당자 정보도 여러 별칭으로 도착할 수 있음.
// 별칭 우선순위는 경로 목록으로 고정.

package format

import (
	"fmt"
	"strings"
)

// noDataMessage - 시프트가 없을 때의 고정 응답
const noDataMessage = "❌ No on-call data available"

// 시프트 시작/종료 시각 별칭 (우선순위 순)
var (
	shiftStartPaths = [][]string{
		{"start"},
		{"start_time"},
		{"shift_start"},
		{"shift_start_time"},
	}
	shiftEndPaths = [][]string{
		{"end"},
		{"end_time"},
		{"shift_end"},
		{"shift_end_time"},
	}

	// 담당자 이름: 중첩 user 객체 -> 플랫 필드 순
	assigneeNamePaths = [][]string{
		{"user", "name"},
		{"user", "user_email"},
		{"user", "user_username"},
		{"user_username"},
		{"user_email"},
	}
	assigneeUsernamePaths = [][]string{
		{"user", "username"},
		{"user", "user_username"},
		{"user_username"},
	}
)

// ScheduleFormatter - 시프트 레코드 렌더링 (current / list / day summary)
type ScheduleFormatter struct {
	clock *Clock
}

func NewScheduleFormatter(clock *Clock) *ScheduleFormatter {
	return &ScheduleFormatter{clock: clock}
}

// AssigneeName - 시프트 담당자 이름 해석, 어디에도 없으면 "Unknown"
func AssigneeName(shift []byte) string {
	if name := firstString(shift, assigneeNamePaths); name != "" {
		return name
	}
	return "Unknown"
}

// assigneeLine - "👤 name (@username)" 형태, username 없으면 이름만
func assigneeLine(shift []byte) string {
	name := AssigneeName(shift)
	if username := firstString(shift, assigneeUsernamePaths); username != "" && username != name {
		return fmt.Sprintf("👤 %s (@%s)", name, username)
	}
	return "👤 " + name
}

// RenderCurrent - 현재 당직자 1명 (헤더 + 담당자 + 시프트 시간 블록)
func (f *ScheduleFormatter) RenderCurrent(shift []byte, scheduleName string) string {
	var b strings.Builder
	if scheduleName != "" {
		b.WriteString("📅 Schedule: ")
		b.WriteString(scheduleName)
		b.WriteString("\n")
	}
	b.WriteString("👀 Current on-call:\n")
	b.WriteString(assigneeLine(shift))

	start := firstString(shift, shiftStartPaths)
	end := firstString(shift, shiftEndPaths)
	if start != "" || end != "" {
		b.WriteString("\n")
	}
	if start != "" {
		b.WriteString("\n⏰ Start: ")
		b.WriteString(f.clock.ShiftTime(start))
	}
	if end != "" {
		b.WriteString("\n⏳ End: ")
		b.WriteString(f.clock.ShiftTime(end))
	}
	return b.String()
}

// RenderList - 당직 로테이션 목록 (최대 maxItems개, 초과분은 요약 라인)
func (f *ScheduleFormatter) RenderList(shifts [][]byte, scheduleName string, maxItems int) string {
	if len(shifts) == 0 {
		return noDataMessage
	}

	var b strings.Builder
	if scheduleName != "" {
		b.WriteString("📅 Schedule: ")
		b.WriteString(scheduleName)
		b.WriteString("\n")
	}
	b.WriteString("👀 On-call rotation:\n")

	shown := len(shifts)
	if maxItems > 0 && shown > maxItems {
		shown = maxItems
	}
	for i := 0; i < shown; i++ {
		fmt.Fprintf(&b, "\n%d. %s", i+1, assigneeLine(shifts[i]))
		if start := firstString(shifts[i], shiftStartPaths); start != "" {
			b.WriteString("\n   ⏰ ")
			b.WriteString(f.clock.ShiftTime(start))
		}
	}
	if len(shifts) > shown {
		fmt.Fprintf(&b, "\n\n... and %d more", len(shifts)-shown)
	}
	return b.String()
}

// RenderDaySummary - 오늘 하루의 당직 요약
//
// 헤더 날짜는 호출 시점 기준 (설정 타임존). 출력이 시각 의존적인
// 유일한 렌더러
func (f *ScheduleFormatter) RenderDaySummary(shifts [][]byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 On-call for %s:\n", f.clock.Today())

	if len(shifts) == 0 {
		b.WriteString("👥 On duty today (0 shifts):\n- no data")
		return b.String()
	}
	if len(shifts) == 1 {
		b.WriteString("👥 On duty today (1 shift):")
	} else {
		fmt.Fprintf(&b, "👥 On duty today (%d shifts):", len(shifts))
	}

	for _, shift := range shifts {
		start := f.clock.ClockTime(firstString(shift, shiftStartPaths))
		end := f.clock.ClockTime(firstString(shift, shiftEndPaths))
		fmt.Fprintf(&b, "\n- %s — %s - %s", AssigneeName(shift), start, end)
	}
	return b.String()
}
