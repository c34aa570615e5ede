package routes

import (
	"spotdrop/auth"
	"spotdrop/messages"
	"spotdrop/notify"
	"spotdrop/spots"

	"github.com/gin-gonic/gin"
)

func SetupAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/login", auth.HandleLogin)
		api.POST("/users", auth.HandleRegister)

		api.GET("/spot", spots.HandleGetSpots)
		api.GET("/spot/user/:userId", spots.HandleGetSpotsByUser)
		api.POST("/spot", spots.HandleCreateSpot)
		api.DELETE("/spot/:id", spots.HandleDeleteSpot)
		api.GET("/category", spots.HandleGetCategories)
		api.POST("/mark-as-picked-up", spots.HandleMarkPickedUp)

		api.GET("/messages", messages.HandleGetMessages)
		api.GET("/messages/:userId", messages.HandleGetUserMessages)
		api.POST("/messages", messages.HandleSendMessage)

		api.POST("/push-token", notify.HandleRegisterPushToken)
	}
}
