package router

import (
	"github.com/gin-gonic/gin"
	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
	"github.com/suz-u3n-chu/line-image-bot/internal/handler"
	"github.com/suz-u3n-chu/line-image-bot/internal/middleware"
)

type RouterConfig struct {
	WebhookHandler *handler.WebhookHandler
	Logger         domain.LoggingRepository
}

func SetupRoutes(config RouterConfig) *gin.Engine {

	g := gin.New()
	g.Use(gin.Recovery(), middleware.AddRequestID(), middleware.LoggingRequestMiddleware(config.Logger))

	g.Handle("GET", "/", config.WebhookHandler.HealthHandler)

	g.Handle("POST", "/callback",
		middleware.CheckContentType(),
		middleware.LimitBodySize(config.WebhookHandler.Config.MaxAllowedSize),
		config.WebhookHandler.CallbackHandler)

	return g

}
