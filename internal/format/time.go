// 업스트림 타임스탬프 정규화 유틸리티
//
// Grafana OnCall은 엔드포인트마다 타임스탬프 형식이 조금씩 다름
// (타임존 유무, 소수점 초, 'T' 대신 공백 등). 파싱에 실패하면
// 원본 문자열을 그대로 노출. 잘못된 필드 하나 때문에 알림 전체가
// 막히면 안 됨.

package format

import (
	"strings"
	"time"
)

const (
	eventTimeLayout = "15:04:05 02.01.06"
	shiftTimeLayout = "02.01.2006 15:04"
	clockLayout     = "15:04"
	dayLayout       = "02.01.2006"
)

// timestampLayouts - 허용하는 ISO-8601 변형 목록 (순서대로 시도)
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp - ISO-8601 계열 타임스탬프 파싱
func ParseTimestamp(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Clock - 타임존 적용과 고정 포맷 렌더링을 담당
// loc이 nil이면 타임스탬프 자체의 타임존 그대로 렌더링
type Clock struct {
	loc *time.Location
}

func NewClock(loc *time.Location) *Clock {
	return &Clock{loc: loc}
}

func (c *Clock) localize(t time.Time) time.Time {
	if c.loc != nil {
		return t.In(c.loc)
	}
	return t
}

// EventTime - 이벤트 알림용 렌더링 (HH:MM:SS DD.MM.YY)
// 파싱 실패 시 원본 문자열 반환
func (c *Clock) EventTime(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return value
	}
	return c.localize(t).Format(eventTimeLayout)
}

// ShiftTime - 당직 시프트용 렌더링 (DD.MM.YYYY HH:MM)
func (c *Clock) ShiftTime(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return value
	}
	return c.localize(t).Format(shiftTimeLayout)
}

// ClockTime - 분 단위 시각만 렌더링 (HH:MM)
func (c *Clock) ClockTime(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return value
	}
	return c.localize(t).Format(clockLayout)
}

// Today - 설정 타임존 기준 오늘 날짜 (DD.MM.YYYY)
func (c *Clock) Today() string {
	return c.localize(time.Now()).Format(dayLayout)
}
