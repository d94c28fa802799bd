package api

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/luvnft/memeo/ledger"
)

// StartServer initializes the REST API
func StartServer(port int, led *ledger.Ledger) {
	r := gin.Default()
	SetupRoutes(r, led)

	go func() {
		if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
			log.Printf("API server stopped: %v", err)
		}
	}()
}
