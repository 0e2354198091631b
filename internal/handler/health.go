package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// chatReadiness - 채팅 클라이언트 구성 상태 확인 인터페이스
type chatReadiness interface {
	IsConfigured() bool
}

// 헬스체크 엔드포인트
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// 루트 엔드포인트
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Grafana OnCall gateway is running",
	})
}

// Health - Kubernetes/Docker용 헬스체크
// 채팅 클라이언트가 구성되지 않으면 unhealthy
func Health(chat chatReadiness) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !chat.IsConfigured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"detail": "bot not configured",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "oncall-gateway",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
