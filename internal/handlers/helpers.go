package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskway/internal/repositories"
)

func getUserID(c *gin.Context) string {
	v, ok := c.Get("user_id")
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// respondRepoErr maps repository errors onto the 404/500 split every handler
// uses.
func respondRepoErr(c *gin.Context, err error, msg string) {
	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
