package user

import (
	"log"
	"net/http"
	"time"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// 🟢 POST /api/reviews
func CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		PractitionerID string `json:"practitionerId" binding:"required"`
		Rating         int    `json:"rating" binding:"required"`
		Comment        string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	practitionerID, err := gocql.ParseUUID(input.PractitionerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid practitioner id"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	review := models.Review{
		ID:             gocql.TimeUUID(),
		PractitionerID: practitionerID,
		UserID:         userID,
		Rating:         input.Rating,
		Comment:        input.Comment,
		CreatedAt:      time.Now(),
	}

	if err := session.Query(`INSERT INTO reviews (id, practitioner_id, user_id, rating, comment, created_at)
	                         VALUES (?, ?, ?, ?, ?, ?)`,
		review.ID, review.PractitionerID, review.UserID, review.Rating, review.Comment, review.CreatedAt,
	).Exec(); err != nil {
		log.Println("❌ Review insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review creation failed"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GET /api/reviews/practitioner/:practitionerId
func GetPractitionerReviews(c *gin.Context) {
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

	iter := session.Query(`SELECT id, practitioner_id, user_id, rating, comment, created_at
	                       FROM reviews WHERE practitioner_id = ?`, practitionerID).Iter()

	reviews := []models.Review{}
	var r models.Review
	total := 0
	for iter.Scan(&r.ID, &r.PractitionerID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt) {
		reviews = append(reviews, r)
		total += r.Rating
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Review list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review lookup failed"})
		return
	}

	average := 0.0
	if len(reviews) > 0 {
		average = float64(total) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"average": average,
		"count":   len(reviews),
	})
}
