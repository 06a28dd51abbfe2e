package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"

	"tickertag/api/handlers"
	"tickertag/db"
	_ "tickertag/docs"
	"tickertag/models"
	"tickertag/repositories"
	"tickertag/services"
)

func New() *gin.Engine {
	r := gin.Default()

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		taxonomy := models.TaxonomyV1()
		events := repositories.NewEventRepository(db.Database())
		runs := repositories.NewRunRepository(db.Database())
		overrides := repositories.NewOverrideRepository(db.Database())

		clsSvc := services.NewClassificationService(events, runs, overrides, taxonomy)
		ovSvc := services.NewOverrideService(overrides, taxonomy)

		api.GET("/events/:id/classification", handlers.GetCurrentViewHandler(clsSvc))
		api.GET("/events/:id/runs", handlers.ListRunsHandler(clsSvc))
		api.POST("/events/:id/overrides", handlers.AppendOverrideHandler(ovSvc))
		api.GET("/assets/:id/classifications", handlers.ListAssetViewsHandler(clsSvc))
	}

	return r
}
