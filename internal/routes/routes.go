package routes

import (
	"github.com/gin-gonic/gin"

	"pincheck/internal/config"
	"pincheck/internal/controllers"
	"pincheck/internal/store"
)

// SetupRouter initializes controllers and API routes
func SetupRouter(st store.Store, cfg *config.Config) *gin.Engine {
	pincodeController := controllers.PincodeController{Store: st}

	// Set up Gin router
	router := gin.Default()

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	// Group API routes under /api/v1
	api := router.Group("/api/v1")
	{
		pincodes := api.Group("/pincodes")
		{
			// GET /api/v1/pincodes
			// Latest check outcome per pincode
			pincodes.GET("/", pincodeController.GetPincodes)

			// GET /api/v1/pincodes/:code
			// Latest check plus stored detail rows for one pincode
			pincodes.GET("/:code", pincodeController.GetPincode)
		}

		// GET /api/v1/summary
		// Record counts grouped by status
		api.GET("/summary", pincodeController.GetSummary)
	}

	return router
}
