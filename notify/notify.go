package notify

import (
	"spotdrop/db"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandleRegisterPushToken stores one push token per user. Delivery is handled
// by an external push service; this side only keeps the registration current.
func HandleRegisterPushToken(c *gin.Context) {
	var json struct {
		UserID    int    `json:"userId"`
		PushToken string `json:"pushToken"`
	}
	if err := c.BindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	if json.PushToken == "" {
		c.JSON(400, gin.H{"error": "Push token is required"})
		return
	}

	query := `INSERT INTO push_tokens (user_id, token) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET token = excluded.token`
	if _, err := db.DB.Exec(query, json.UserID, json.PushToken); err != nil {
		c.JSON(500, gin.H{"error": "Database error storing push token"})
		return
	}

	log.Info().Int("userID", json.UserID).Msg("push token registered")
	c.JSON(200, gin.H{"message": "Push token registered"})
}
