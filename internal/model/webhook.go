package model

// WebhookAcceptedResponse - 웹훅 수신 성공 응답 (202)
// 실제 전송은 백그라운드에서 수행되므로 전송 결과와 무관하게 즉시 반환
type WebhookAcceptedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse - 공통 에러 응답
type ErrorResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}
