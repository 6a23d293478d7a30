package utils

import (
	"kalongo-backend/apperrors"

	"github.com/gin-gonic/gin"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONAppError renders any service error with its HTTP status and kind.
func JSONAppError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.JSON(appErr.Code, gin.H{"success": false, "error": appErr.Message, "code": appErr.Kind})
}
