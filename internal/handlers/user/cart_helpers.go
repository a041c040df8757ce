package user

import (
	"context"
	"net/http"
	"strconv"

	"wellnexus_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return 0, false
	}
	return index, true
}

func mutateByIndex(c *gin.Context, op func(context.Context, string, int) (models.Cart, error), message string) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	index, ok := indexParam(c)
	if !ok {
		return
	}

	updated, err := op(c.Request.Context(), userID, index)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart update failed"})
		return
	}

	resp := cartResponse(updated)
	resp["message"] = message
	c.JSON(http.StatusOK, resp)
}
