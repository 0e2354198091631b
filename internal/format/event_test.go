package format

import (
	"strings"
	"testing"
	"time"
)

func newTestEventFormatter(baseURL string) *EventFormatter {
	return NewEventFormatter(NewClock(time.UTC), baseURL)
}

func TestRenderEscalation(t *testing.T) {
	event := []byte(`{
		"alert_group": {"id": "42", "team_id": "T1", "created_at": "2025-01-01T10:00:00Z", "alerts_count": 1},
		"event": {"type": "escalation"},
		"alert_payload": {"groupLabels": {"alertname": "HighCPU"}, "numFiring": 1}
	}`)

	got := newTestEventFormatter("").Render(event)

	for _, want := range []string{
		"🚨 #42 - HighCPU",
		"Status: Escalation",
		"Start: 10:00:00 01.01.25",
		"Alerts in group: 1 / Firing: 1 / Resolved: 0",
		"Group Labels:\n  alertname: HighCPU",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Render() missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderResolve(t *testing.T) {
	event := []byte(`{
		"alert_group": {
			"id": "42",
			"created_at": "2025-01-01T10:00:00Z",
			"resolved_at": "2025-01-01T11:30:00Z"
		},
		"event": {"type": "resolve"},
		"user": {"username": "alice"},
		"alert_payload": {"groupLabels": {"alertname": "HighCPU"}}
	}`)

	got := newTestEventFormatter("").Render(event)

	for _, want := range []string{
		"🟢 #42 - HighCPU",
		"Status: Resolved",
		"Start: 10:00:00 01.01.25",
		"Resolve: 11:30:00 01.01.25",
		"By: alice",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Render() missing %q in:\n%s", want, got)
		}
	}
	// 상태 전환 알림에는 라벨/카운트 블록 없음
	if strings.Contains(got, "Group Labels:") || strings.Contains(got, "Alerts in group:") {
		t.Fatalf("Render() leaked escalation-only blocks:\n%s", got)
	}
}

func TestRenderSilence(t *testing.T) {
	event := []byte(`{
		"alert_group": {"id": "7"},
		"event": {"type": "silence", "time": "2025-01-01T09:00:00Z", "until": "2025-01-01T12:00:00Z"},
		"user": {"username": "bob"}
	}`)

	got := newTestEventFormatter("").Render(event)

	for _, want := range []string{
		"🔕 #7",
		"Status: Silenced",
		"Start: 09:00:00 01.01.25",
		"Resolve: 12:00:00 01.01.25",
		"By: bob",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Render() missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderUnknownType(t *testing.T) {
	event := []byte(`{"alert_group": {"id": "3"}, "event": {"type": "mystery"}}`)

	got := newTestEventFormatter("").Render(event)

	if !strings.Contains(got, "❓ #3") || !strings.Contains(got, "Status: Mystery") {
		t.Fatalf("Render() = %q", got)
	}
}

func TestRenderFallsBackToAlertGroupState(t *testing.T) {
	event := []byte(`{"alert_group": {"id": "9", "state": "firing"}}`)

	got := newTestEventFormatter("").Render(event)

	if !strings.Contains(got, "🚨 #9") || !strings.Contains(got, "Status: Firing") {
		t.Fatalf("Render() = %q", got)
	}
}

// 어노테이션 블록은 이벤트 타입과 무관하게 항상 표시
func TestRenderAnnotationsAlwaysShown(t *testing.T) {
	event := []byte(`{
		"alert_group": {"id": "5"},
		"event": {"type": "acknowledge"},
		"alert_payload": {"commonAnnotations": {"summary": "disk almost full"}}
	}`)

	got := newTestEventFormatter("").Render(event)

	if !strings.Contains(got, "Annotations:\n  \"summary\": \"disk almost full\"") {
		t.Fatalf("Render() missing annotations block:\n%s", got)
	}
}

func TestRenderLinks(t *testing.T) {
	event := []byte(`{"alert_group": {"id": "42", "team_id": "T1"}, "event": {"type": "escalation"}}`)

	withLinks := newTestEventFormatter("https://grafana.example.com/").Render(event)
	if !strings.Contains(withLinks, "Alert group: https://grafana.example.com/alert-groups/42") {
		t.Fatalf("Render() missing group link:\n%s", withLinks)
	}
	if !strings.Contains(withLinks, "All alert groups: https://grafana.example.com/alert-groups?team_id=T1") {
		t.Fatalf("Render() missing team link:\n%s", withLinks)
	}

	withoutBase := newTestEventFormatter("").Render(event)
	if strings.Contains(withoutBase, "alert-groups") {
		t.Fatalf("Render() emitted links without a base URL:\n%s", withoutBase)
	}
}

// 같은 이벤트를 두 번 렌더링하면 바이트 단위로 동일해야 함
func TestRenderIsDeterministic(t *testing.T) {
	event := []byte(`{
		"alert_group": {"id": "42", "created_at": "2025-01-01T10:00:00Z"},
		"event": {"type": "escalation"},
		"alert_payload": {
			"groupLabels": {"alertname": "HighCPU", "severity": "critical", "region": "eu"},
			"commonLabels": {"job": "node", "instance": "n1"},
			"commonAnnotations": {"summary": "cpu hot", "runbook": "https://wiki/cpu"}
		}
	}`)

	f := newTestEventFormatter("https://grafana.example.com")
	first := f.Render(event)
	for i := 0; i < 20; i++ {
		if got := f.Render(event); got != first {
			t.Fatalf("Render() not deterministic:\n%s\nvs\n%s", first, got)
		}
	}
}

func TestRenderNeverPanics(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte(``),
		[]byte(`{}`),
		[]byte(`not json`),
		[]byte(`{"alert_group": 13}`),
		[]byte(`{"event": {"type": ["escalation"]}}`),
	}

	f := newTestEventFormatter("https://grafana.example.com")
	for _, input := range inputs {
		if got := f.Render(input); got == "" {
			t.Fatalf("Render(%q) returned empty string", input)
		}
	}
}

func TestEventTypePriority(t *testing.T) {
	tests := []struct {
		name  string
		event string
		want  string
	}{
		{name: "event-type-wins", event: `{"event": {"type": "Resolve"}, "alert_group": {"state": "firing"}}`, want: "resolve"},
		{name: "state-fallback", event: `{"alert_group": {"state": "Firing"}}`, want: "firing"},
		{name: "nothing", event: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EventType([]byte(tt.event)); got != tt.want {
				t.Fatalf("EventType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlertGroupIDNumeric(t *testing.T) {
	if got := AlertGroupID([]byte(`{"alert_group": {"id": 42}}`)); got != "42" {
		t.Fatalf("AlertGroupID() = %q, want \"42\"", got)
	}
}
