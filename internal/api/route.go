package api

import (
	"Redwatch/internal/api/middleware"
	"Redwatch/internal/pkg/logger"
	"Redwatch/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	r.Use(middleware.TraceMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			response.Success(c, "pong")
		})

		noteGroup := apiGroup.Group("/notes")
		{
			noteGroup.GET("/recent", group.NoteHandler.Recent)
			noteGroup.GET("/:note_id", group.NoteHandler.Exists)
		}

		apiGroup.POST("/watch/run", group.NoteHandler.Run)
	}

	return r
}
