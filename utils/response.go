package utils

import "github.com/gin-gonic/gin"

// JSONSuccess writes body with "success": true added alongside its keys.
func JSONSuccess(c *gin.Context, code int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(code, body)
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// AbortJSONError is JSONError for middleware.
func AbortJSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}
