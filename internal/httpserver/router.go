package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Catalog))

	h := &itemsHandler{catalog: deps.Catalog, logger: logger}
	items := router.Group("/api/items")
	{
		items.POST("", h.create)
		items.POST("/batch", h.createBatch)
		items.GET("", h.list)
		items.GET("/search", h.search)
		items.GET("/search/title", h.searchByTitle)
		items.GET("/search/brand/:brand", h.searchByBrand)
		items.GET("/search/price", h.searchByPriceRange)
		items.GET("/statistics", h.statistics)
		items.GET("/sort-options", h.sortOptions)
		items.GET("/brands", h.brands)
		items.GET("/categories", h.categories)
		items.DELETE("/batch", h.deleteBatch)
		items.GET("/:id", h.getByID)
		items.PUT("/:id", h.update)
		items.PUT("/:id/price", h.updatePrice)
		items.PUT("/:id/status", h.updateStatus)
		items.DELETE("/:id", h.softDelete)
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "product-catalog-api",
		"timestamp": time.Now().UTC(),
	})
}

func readyHandler(svc counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := svc.Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "products": count})
	}
}

type counter interface {
	Count(ctx context.Context) (int, error)
}
