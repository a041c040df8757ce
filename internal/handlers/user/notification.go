package user

import (
	"log"
	"net/http"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// 🔔 GET /api/notifications
func GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT id, user_id, message, level, read, created_at
	                       FROM notifications WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	notifications := []models.Notification{}
	var n models.Notification
	unread := 0
	for iter.Scan(&n.ID, &n.UserID, &n.Message, &n.Level, &n.Read, &n.CreatedAt) {
		notifications = append(notifications, n)
		if !n.Read {
			unread++
		}
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Notification list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Notification lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unread": unread})
}

// PUT /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	if err := session.Query(`UPDATE notifications SET read = true WHERE id = ?`, id).Exec(); err != nil {
		log.Println("❌ Notification update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
