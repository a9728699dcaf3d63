package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes the uniform success envelope.
func Success(c *gin.Context, httpCode int, data interface{}) {
	c.JSON(httpCode, gin.H{
		"status": "success",
		"data":   data,
	})
}

// SuccessList writes the list envelope with a result count.
func SuccessList(c *gin.Context, results int, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": results,
		"data":    data,
	})
}

// NoContent writes the empty delete response. 204 carries no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
