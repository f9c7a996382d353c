package routes

import (
	"net/http"

	"fulfillment-service/controllers"
	"fulfillment-service/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterVerifyRoutes(r *gin.Engine, vc *controllers.VerifyController) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	verify := r.Group("/")
	verify.Use(middleware.RateLimitMiddleware())
	verify.POST("/verify", vc.VerifyAndDeliver)
}
