package api

import (
	"github.com/gin-gonic/gin"
	"github.com/luvnft/memeo/api/handlers"
	"github.com/luvnft/memeo/ledger"
)

// SetupRoutes initializes all API endpoints
func SetupRoutes(router *gin.Engine, led *ledger.Ledger) {
	api := router.Group("/api")
	{
		api.GET("/health", handlers.GetHealth)
		api.GET("/ledger/:key", handlers.GetLedgerValue(led))
		api.GET("/ws", handlers.HandleWebSocket)
	}
}
