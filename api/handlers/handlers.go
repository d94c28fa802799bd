package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luvnft/memeo/ledger"
)

// GetHealth reports basic liveness.
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetLedgerValue exposes a single ledger collection as JSON.
func GetLedgerValue(led *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Param("key") {
		case ledger.KeyHeartedMemes:
			c.JSON(http.StatusOK, led.HeartedMemes())
		case ledger.KeySummonedTokens:
			c.JSON(http.StatusOK, led.SummonedTokens())
		case ledger.KeyTweets:
			c.JSON(http.StatusOK, led.Tweets())
		case ledger.KeyInteractedTweetIDs:
			c.JSON(http.StatusOK, led.InteractedTweetIDs())
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown ledger key"})
		}
	}
}
