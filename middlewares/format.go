package middlewares

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes the standard error envelope. The
// underlying error text is exposed as "details" only in development.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s %s - %s: %v", status, c.Request.Method, c.Request.URL.Path, message, err)

	body := gin.H{"success": false, "error": message}
	if err != nil && os.Getenv("ENV") == "development" {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}
