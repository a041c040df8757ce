package user

import (
	"log"
	"net/http"
	"time"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"
	"wellnexus_back_end/internal/slots"
	"wellnexus_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// BookedSlotSource is injectable so slot lookups stay deterministic in tests.
var BookedSlotSource slots.Source = slots.ScyllaSource{}

// 🟢 POST /api/sessions
func BookSession(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		PractitionerID string `json:"practitionerId" binding:"required"`
		Date           string `json:"date" binding:"required"` // RFC 3339
		Notes          string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	practitionerID, err := gocql.ParseUUID(input.PractitionerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid practitioner id"})
		return
	}

	at, err := time.Parse(time.RFC3339, input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	// Reject a slot someone already holds.
	booked, err := BookedSlotSource.BookedSlots(c.Request.Context(), practitionerID, at.Format("2006-01-02"))
	if err != nil {
		log.Println("⚠️ Booked-slot lookup failed:", err)
	}
	slot := at.Format("15:04")
	for _, taken := range booked {
		if taken == slot {
			c.JSON(http.StatusConflict, gin.H{"error": "This slot is already booked"})
			return
		}
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	ts := models.TherapySession{
		ID:             gocql.TimeUUID(),
		PractitionerID: practitionerID,
		UserID:         userID,
		Date:           at,
		Status:         "booked",
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
	}

	if err := session.Query(`INSERT INTO therapy_sessions (id, practitioner_id, user_id, date, status, notes, created_at)
	                         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts.ID, ts.PractitionerID, ts.UserID, ts.Date, ts.Status, ts.Notes, ts.CreatedAt,
	).Exec(); err != nil {
		log.Println("❌ Session insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking failed"})
		return
	}

	log.Printf("✅ Session booked: %s with %s at %s", userID, practitionerID, at.Format(time.RFC3339))

	// Confirmation mail off the request path
	if email != "" {
		name, specialization := "your practitioner", "therapy"
		if usersSession, err := database.GetUsersSession(); err == nil {
			usersSession.Query(`SELECT name, specialization FROM practitioner_profiles
			                    WHERE practitioner_id = ?`, practitionerID).Scan(&name, &specialization)
		}
		go func() {
			html := utils.GenerateBookingConfirmationHTML(name, specialization,
				at.Format("Monday, 2 January 2006 at 3:04 PM"))
			if err := utils.SendConfirmationEmail(email, "Your WellNexus session is booked", html, nil); err != nil {
				log.Println("❌ Booking confirmation mail failed:", err)
			}
		}()
	}

	c.JSON(http.StatusCreated, ts)
}

// GET /api/sessions/user/:userId
func GetUserSessions(c *gin.Context) {
	requested := c.Param("userId")
	if requested != c.GetString("user_id") && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT id, practitioner_id, user_id, date, status, notes, created_at
	                       FROM therapy_sessions WHERE user_id = ? ALLOW FILTERING`, requested).Iter()

	sessions := scanSessions(iter)
	if err := iter.Close(); err != nil {
		log.Println("❌ Session list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GET /api/sessions/practitioner/:practitionerId
func GetPractitionerSessions(c *gin.Context) {
	practitionerID, err := gocql.ParseUUID(c.Param("practitionerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid practitioner id"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT id, practitioner_id, user_id, date, status, notes, created_at
	                       FROM therapy_sessions WHERE practitioner_id = ? ALLOW FILTERING`, practitionerID).Iter()

	sessions := scanSessions(iter)
	if err := iter.Close(); err != nil {
		log.Println("❌ Session list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// 🔁 PUT /api/sessions/:id/status
func UpdateSessionStatus(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	status := c.Query("status")
	switch status {
	case "booked", "confirmed", "completed", "cancelled":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	if err := session.Query(`UPDATE therapy_sessions SET status = ? WHERE id = ?`, status, id).Exec(); err != nil {
		log.Println("❌ Session status update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Status update failed"})
		return
	}

	log.Printf("✅ Session %s → %s", id, status)
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": status})
}

// GET /api/sessions/slots?practitionerId=X&date=2006-01-02
func GetAvailableSlots(c *gin.Context) {
	practitionerID, err := gocql.ParseUUID(c.Query("practitionerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid practitioner id"})
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date"})
		return
	}

	// The availability window comes from the profile; defaults are 9→18.
	startHour, endHour := slots.DefaultStartHour, slots.DefaultEndHour
	if usersSession, err := database.GetUsersSession(); err == nil {
		var s, e int
		if err := usersSession.Query(`SELECT start_hour, end_hour FROM practitioner_profiles
		                              WHERE practitioner_id = ?`, practitionerID).Scan(&s, &e); err == nil && e > s {
			startHour, endHour = s, e
		}
	}

	grid, err := slots.ForDate(c.Request.Context(), BookedSlotSource, practitionerID, date, startHour, endHour)
	if err != nil {
		// Degrade to an empty grid rather than failing the view.
		log.Println("⚠️ Slot lookup failed:", err)
		c.JSON(http.StatusOK, gin.H{"slots": []slots.Slot{}, "date": date})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": grid, "date": date})
}

func scanSessions(iter *gocql.Iter) []models.TherapySession {
	sessions := []models.TherapySession{}
	var ts models.TherapySession
	for iter.Scan(&ts.ID, &ts.PractitionerID, &ts.UserID, &ts.Date, &ts.Status, &ts.Notes, &ts.CreatedAt) {
		sessions = append(sessions, ts)
	}
	return sessions
}
