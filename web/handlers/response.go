package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON envelope shared by the /api endpoints

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
