package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/coursechat-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursechat-backend/internal/http/middleware"
	"github.com/yungbote/coursechat-backend/internal/observability"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	GroundingHandler *httpH.GroundingHandler
	CatalogHandler   *httpH.CatalogHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "coursechat"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readycheck", cfg.HealthHandler.ReadyCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Grounded chat
		if cfg.GroundingHandler != nil {
			api.POST("/chat/grounded", cfg.GroundingHandler.Respond)
			api.POST("/chat/grounded/context", cfg.GroundingHandler.Context)
		}

		// Catalog (read-only)
		if cfg.CatalogHandler != nil {
			api.GET("/catalog/vocabulary", cfg.CatalogHandler.Vocabulary)
			api.GET("/catalog/materials", cfg.CatalogHandler.ListMaterials)
		}
	}

	return r
}
