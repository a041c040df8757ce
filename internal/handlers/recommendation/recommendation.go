package recommendation

import (
	"log"
	"net/http"
	"strings"
	"time"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// recommendationSource tags rows produced by the rule engine.
const recommendationSource = "AI_ENGINE"

const defaultTherapy = "General Wellness Consultation"

var symptomTherapies = map[string]string{
	"back pain":        "Chiropractic",
	"stress":           "Acupuncture",
	"anxiety":          "Ayurveda",
	"muscle pain":      "Physiotherapy",
	"headache":         "Acupuncture",
	"joint pain":       "Physiotherapy",
	"insomnia":         "Ayurveda",
	"digestive issues": "Ayurveda",
}

// suggestTherapy resolves a symptom to a therapy, falling back to a
// general consultation for anything unmapped.
func suggestTherapy(symptom string) string {
	if therapy, ok := symptomTherapies[strings.ToLower(strings.TrimSpace(symptom))]; ok {
		return therapy
	}
	return defaultTherapy
}

// POST /api/recommendations
func CreateRecommendation(c *gin.Context) {
	var input struct {
		Symptom string `json:"symptom" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symptom is required"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	rec := models.Recommendation{
		ID:               gocql.TimeUUID(),
		UserID:           c.GetString("user_id"),
		Symptom:          input.Symptom,
		SuggestedTherapy: suggestTherapy(input.Symptom),
		Source:           recommendationSource,
		CreatedAt:        time.Now(),
	}
	if err := session.Query(`INSERT INTO recommendations (id, user_id, symptom, suggested_therapy, source, created_at)
	                         VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Symptom, rec.SuggestedTherapy, rec.Source, rec.CreatedAt).Exec(); err != nil {
		log.Println("❌ Recommendation save failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation save failed"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// GET /api/recommendations/user/:userId
//
// A user sees their own history; admins see anyone's.
func GetUserRecommendations(c *gin.Context) {
	userID := c.Param("userId")
	if userID != c.GetString("user_id") && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	listRecommendations(c, `SELECT id, user_id, symptom, suggested_therapy, source, created_at
	                        FROM recommendations WHERE user_id = ? ALLOW FILTERING`, userID)
}

// GET /api/recommendations/therapy/:therapy
func GetByTherapy(c *gin.Context) {
	listRecommendations(c, `SELECT id, user_id, symptom, suggested_therapy, source, created_at
	                        FROM recommendations WHERE suggested_therapy = ? ALLOW FILTERING`,
		c.Param("therapy"))
}

func listRecommendations(c *gin.Context, query string, bind any) {
	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(query, bind).Iter()

	recs := []models.Recommendation{}
	var r models.Recommendation
	for iter.Scan(&r.ID, &r.UserID, &r.Symptom, &r.SuggestedTherapy, &r.Source, &r.CreatedAt) {
		recs = append(recs, r)
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Recommendation list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}
